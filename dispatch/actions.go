package dispatch

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"handy-menu/clipboard"
)

// keystrokeDelay gives the previously focused app time to take key focus
// back after the menu window closes.
const keystrokeDelay = "0.01"

// RegisterBuiltins installs the standard quick actions. quit is called by
// the "quit" action to shut the whole app down.
func RegisterBuiltins(r *Registry, quit func()) {
	r.Register("copy", Keystroke("c", "command"))
	r.Register("paste", Keystroke("v", "command"))
	r.Register("select-all", Keystroke("a", "command"))
	r.Register("select-all-copy", Sequence(Keystroke("a", "command"), Keystroke("c", "command")))
	r.Register("pastebot", Keystroke("v", "command", "shift"))
	r.Register("paste-plain", PastePlain())
	r.Register("save", Keystroke("s", "command"))
	r.Register("find", Keystroke("f", "command"))
	r.Register("escape", KeyCode(53))
	r.Register("tab", KeyCode(48))
	r.Register("switch-window", Keystroke("`", "command"))
	r.Register("quit", func(ctx context.Context) error {
		quit()
		return nil
	})
}

// Keystroke synthesizes a key press with the given modifiers in the
// frontmost application.
func Keystroke(key string, modifiers ...string) Action {
	var using string
	if len(modifiers) > 0 {
		downs := make([]string, len(modifiers))
		for i, m := range modifiers {
			downs[i] = m + " down"
		}
		using = " using {" + strings.Join(downs, ", ") + "}"
	}
	script := fmt.Sprintf(`delay %s
tell application "System Events"
	keystroke %q%s
end tell`, keystrokeDelay, key, using)
	return osaScript(script)
}

// KeyCode presses a key by hardware code, for keys AppleScript cannot
// express as a character (escape 53, tab 48).
func KeyCode(code int) Action {
	script := fmt.Sprintf(`delay %s
tell application "System Events"
	key code %d
end tell`, keystrokeDelay, code)
	return osaScript(script)
}

// Sequence runs actions in order, stopping at the first failure.
func Sequence(actions ...Action) Action {
	return func(ctx context.Context) error {
		for _, a := range actions {
			if err := a(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// PastePlain strips formatting by rewriting the clipboard's text content
// over itself (text re-entry drops any rich data), then pastes.
func PastePlain() Action {
	paste := Keystroke("v", "command")
	return func(ctx context.Context) error {
		text := clipboard.Read()
		if text != "" {
			if err := clipboard.Write(text); err != nil {
				return err
			}
		}
		return paste(ctx)
	}
}

// ActivateApp brings an application to the front, launching it if needed.
func ActivateApp(path string) Action {
	return func(ctx context.Context) error {
		if runtime.GOOS != "darwin" {
			return fmt.Errorf("app activation not supported on %s", runtime.GOOS)
		}
		out, err := exec.CommandContext(ctx, "open", "-a", path).CombinedOutput()
		if err != nil {
			return fmt.Errorf("open -a %s: %v (%s)", path, err, strings.TrimSpace(string(out)))
		}
		return nil
	}
}

func osaScript(script string) Action {
	return func(ctx context.Context) error {
		if runtime.GOOS != "darwin" {
			return fmt.Errorf("keystroke synthesis not supported on %s", runtime.GOOS)
		}
		out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
		if err != nil {
			msg := strings.TrimSpace(string(out))
			if strings.Contains(msg, "not allowed") || strings.Contains(msg, "1002") {
				return fmt.Errorf("osascript needs Accessibility permission (System Settings > Privacy & Security): %s", msg)
			}
			return fmt.Errorf("osascript: %v (%s)", err, msg)
		}
		return nil
	}
}
