package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOTKEY", "MENU_RADIUS", "MENU_DEADZONE", "TOGGLE_DEBOUNCE_MS", "SECTORS", "BAR_BUTTONS"} {
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hotkey != "Ctrl+Alt+Space" {
		t.Errorf("default hotkey = %q", cfg.Hotkey)
	}
	if cfg.OuterRadius != 120 || cfg.InnerRadius != 30 {
		t.Errorf("default radii = (%v, %v)", cfg.OuterRadius, cfg.InnerRadius)
	}
	if cfg.ToggleDebounce != 250*time.Millisecond {
		t.Errorf("default debounce = %v", cfg.ToggleDebounce)
	}
	if len(cfg.Sectors) != 8 {
		t.Errorf("default sector count = %d, want 8", len(cfg.Sectors))
	}
	if len(cfg.BarButtons) != 4 {
		t.Errorf("default bar button count = %d, want 4", len(cfg.BarButtons))
	}
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("HOTKEY", "Cmd+Shift+Space")
	os.Setenv("MENU_RADIUS", "150")
	os.Setenv("TOGGLE_DEBOUNCE_MS", "100")
	os.Setenv("SECTORS", "Copy:copy, Paste:paste")
	defer func() {
		for _, k := range []string{"HOTKEY", "MENU_RADIUS", "TOGGLE_DEBOUNCE_MS", "SECTORS"} {
			os.Unsetenv(k)
		}
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hotkey != "Cmd+Shift+Space" {
		t.Errorf("hotkey = %q", cfg.Hotkey)
	}
	if cfg.OuterRadius != 150 {
		t.Errorf("radius = %v", cfg.OuterRadius)
	}
	if cfg.ToggleDebounce != 100*time.Millisecond {
		t.Errorf("debounce = %v", cfg.ToggleDebounce)
	}
	if len(cfg.Sectors) != 2 || cfg.Sectors[1].ActionID != "paste" {
		t.Errorf("sectors = %+v", cfg.Sectors)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	os.Setenv("MENU_RADIUS", "not-a-number")
	os.Setenv("TOGGLE_DEBOUNCE_MS", "-5")
	defer func() {
		os.Unsetenv("MENU_RADIUS")
		os.Unsetenv("TOGGLE_DEBOUNCE_MS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OuterRadius != 120 {
		t.Errorf("radius = %v, want default 120", cfg.OuterRadius)
	}
	if cfg.ToggleDebounce != 250*time.Millisecond {
		t.Errorf("debounce = %v, want default", cfg.ToggleDebounce)
	}
}

func TestParseItemsKeepsColonsInActionID(t *testing.T) {
	items := parseItems("Safari:app:/Applications/Safari.app", nil)
	if len(items) != 1 {
		t.Fatalf("items = %+v, want 1", items)
	}
	if items[0].Label != "Safari" || items[0].ActionID != "app:/Applications/Safari.app" {
		t.Errorf("items = %+v", items)
	}
}

func TestParseItemsSkipsMalformedEntries(t *testing.T) {
	items := parseItems("Copy:copy,broken,Paste:paste", nil)
	if len(items) != 2 {
		t.Fatalf("items = %+v, want 2", items)
	}
	if items[0].Label != "Copy" || items[1].ActionID != "paste" {
		t.Errorf("items = %+v", items)
	}
}
