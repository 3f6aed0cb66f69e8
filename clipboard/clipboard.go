package clipboard

import (
	"golang.design/x/clipboard"
)

// Init must be called once before Read/Write; it fails when no system
// clipboard is reachable (e.g. headless CI).
func Init() error {
	return clipboard.Init()
}

// Write replaces the clipboard text.
func Write(text string) error {
	// Write returns a change-notification channel, not an error.
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// Read returns the current clipboard text, empty when the clipboard holds
// no text data.
func Read() string {
	return string(clipboard.Read(clipboard.FmtText))
}
