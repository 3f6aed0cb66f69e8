// Package hotkey is the global input monitor. It runs the gohook event
// stream on its own goroutine, detects the toggle combo, and forwards
// normalized events to a Sink. It never touches menu state itself: the Sink
// is expected to post into the event loop.
package hotkey

import (
	"log"
	"strings"
	"unicode"

	gohook "github.com/robotn/gohook"

	"handy-menu/geometry"
)

// Sink receives normalized input events. Implementations must be safe to
// call from the monitor goroutine and must not block.
type Sink interface {
	Toggle(p geometry.Point)
	PointerMoved(p geometry.Point)
	Confirm()
	Cancel()
}

// Modifier rawcodes per platform. gohook reports the OS keycode, so both
// sets are tracked; a code never emitted on the running platform just
// never matches.
var modifierCodes = map[string][]uint16{
	"ctrl":  {162, 163, 59, 62},  // Win L/R Ctrl, mac Control
	"alt":   {164, 165, 58, 61},  // Win L/R Alt, mac Option
	"shift": {160, 161, 56, 60},  // Win L/R Shift, mac Shift
	"cmd":   {91, 92, 54, 55},    // Win L/R Super, mac Command
}

var escapeCodes = []uint16{27, 53} // Win VK_ESCAPE, mac Escape

// Listen starts the monitor goroutine. combo is of the form
// "Ctrl+Alt+Space"; the final part is the trigger key, everything before it
// a modifier. The toggle fires on the trigger's key-down while all
// modifiers are held, once per press/release pair.
func Listen(combo string, sink Sink) {
	mods, key := parseCombo(combo)
	log.Printf("hotkey: listening for %s (modifiers=%v key=%q)", combo, mods, key)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("hotkey: panic in monitor goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("hotkey: gohook.Start returned nil channel")
			return
		}
		defer gohook.End()

		run(evChan, mods, key, sink)
	}()
}

// run is the monitor loop, split from Listen so it can be driven with a
// synthetic channel in tests.
func run(events <-chan gohook.Event, mods []string, key string, sink Sink) {
	down := map[string]bool{}
	triggerDown := false
	var pointer geometry.Point

	for ev := range events {
		switch ev.Kind {
		case gohook.MouseMove, gohook.MouseDrag:
			pointer = geometry.Point{X: float64(ev.X), Y: float64(ev.Y)}
			sink.PointerMoved(pointer)

		case gohook.MouseDown:
			pointer = geometry.Point{X: float64(ev.X), Y: float64(ev.Y)}
			sink.PointerMoved(pointer)
			sink.Confirm()

		case gohook.KeyDown:
			if isEscape(ev.Rawcode) {
				sink.Cancel()
				continue
			}
			if m := modifierFor(ev.Rawcode); m != "" {
				down[m] = true
				continue
			}
			if !matchesKey(ev, key) {
				continue
			}
			if triggerDown {
				continue // auto-repeat while held
			}
			triggerDown = true
			if allHeld(down, mods) {
				sink.Toggle(pointer)
			}

		case gohook.KeyUp:
			if m := modifierFor(ev.Rawcode); m != "" {
				down[m] = false
				continue
			}
			if matchesKey(ev, key) {
				triggerDown = false
			}
		}
	}
	log.Printf("hotkey: event channel closed")
}

func allHeld(down map[string]bool, mods []string) bool {
	for _, m := range mods {
		if !down[m] {
			return false
		}
	}
	return true
}

func modifierFor(rawcode uint16) string {
	for name, codes := range modifierCodes {
		for _, c := range codes {
			if c == rawcode {
				return name
			}
		}
	}
	return ""
}

func isEscape(rawcode uint16) bool {
	for _, c := range escapeCodes {
		if c == rawcode {
			return true
		}
	}
	return false
}

func matchesKey(ev gohook.Event, key string) bool {
	switch key {
	case "space":
		return ev.Keychar == ' ' || ev.Rawcode == 32 || ev.Rawcode == 49
	case "tab":
		return ev.Keychar == '\t' || ev.Rawcode == 9
	default:
		return len(key) == 1 && unicode.ToLower(ev.Keychar) == rune(key[0])
	}
}

// parseCombo splits "Ctrl+Alt+Space" into its modifier names and trigger
// key, lowercased. win/super/command are aliases for cmd.
func parseCombo(combo string) (mods []string, key string) {
	parts := strings.Split(strings.ToLower(combo), "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == len(parts)-1 {
			key = part
			break
		}
		switch part {
		case "ctrl", "control":
			mods = append(mods, "ctrl")
		case "alt", "option":
			mods = append(mods, "alt")
		case "shift":
			mods = append(mods, "shift")
		case "win", "cmd", "super", "command":
			mods = append(mods, "cmd")
		default:
			log.Printf("hotkey: unknown modifier %q ignored", part)
		}
	}
	return mods, key
}
