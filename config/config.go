package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"handy-menu/menu"
)

type Config struct {
	Hotkey            string
	EnableFileLogging bool

	// Menu geometry, in pixels.
	OuterRadius float64
	InnerRadius float64
	Margin      float64
	BarGap      float64

	// Secondary-bar button layout.
	BarButtonWidth  float64
	BarButtonHeight float64
	BarSpacing      float64

	ToggleDebounce time.Duration

	Sectors    []menu.Item
	BarButtons []menu.Item
}

// Defaults mirror the built-in quick menu: eight pie wedges of frequent
// edit actions and a short bar of occasional ones.
var (
	defaultSectors = []menu.Item{
		{Label: "Copy", ActionID: "copy"},
		{Label: "Paste", ActionID: "paste"},
		{Label: "Select All", ActionID: "select-all"},
		{Label: "Select All & Copy", ActionID: "select-all-copy"},
		{Label: "Pastebot", ActionID: "pastebot"},
		{Label: "Paste Plain", ActionID: "paste-plain"},
		{Label: "Save", ActionID: "save"},
		{Label: "Find", ActionID: "find"},
	}
	defaultBarButtons = []menu.Item{
		{Label: "Escape", ActionID: "escape"},
		{Label: "Tab", ActionID: "tab"},
		{Label: "Switch Win", ActionID: "switch-window"},
		{Label: "Quit", ActionID: "quit"},
	}
)

func Load() (*Config, error) {
	// Try to load .env file from current directory or executable directory
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	cfg := &Config{
		Hotkey:            getEnvWithDefault("HOTKEY", "Ctrl+Alt+Space"),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		OuterRadius:       getEnvFloat("MENU_RADIUS", 120),
		InnerRadius:       getEnvFloat("MENU_DEADZONE", 30),
		Margin:            getEnvFloat("MENU_MARGIN", 20),
		BarGap:            getEnvFloat("MENU_BAR_GAP", 12),
		BarButtonWidth:    getEnvFloat("BAR_BUTTON_WIDTH", 72),
		BarButtonHeight:   getEnvFloat("BAR_BUTTON_HEIGHT", 36),
		BarSpacing:        getEnvFloat("BAR_SPACING", 8),
		ToggleDebounce:    time.Duration(getEnvInt("TOGGLE_DEBOUNCE_MS", 250)) * time.Millisecond,
		Sectors:           parseItems(os.Getenv("SECTORS"), defaultSectors),
		BarButtons:        parseItems(os.Getenv("BAR_BUTTONS"), defaultBarButtons),
	}
	return cfg, nil
}

// parseItems reads "Label:action,Label:action" lists. Only the first colon
// separates label from action, so action ids may themselves contain colons
// ("Safari:app:/Applications/Safari.app"). An empty or fully malformed
// value keeps the defaults.
func parseItems(s string, defaults []menu.Item) []menu.Item {
	if strings.TrimSpace(s) == "" {
		return defaults
	}
	var items []menu.Item
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		label, action, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(action) == "" {
			log.Printf("config: skipping malformed menu item %q (want label:action)", entry)
			continue
		}
		items = append(items, menu.Item{
			Label:    strings.TrimSpace(label),
			ActionID: strings.TrimSpace(action),
		})
	}
	if len(items) == 0 {
		return defaults
	}
	return items
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("config: invalid %s=%q, using default %v", key, v, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("config: invalid %s=%q, using default %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}
