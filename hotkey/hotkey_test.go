package hotkey

import (
	"reflect"
	"testing"

	gohook "github.com/robotn/gohook"

	"handy-menu/geometry"
)

type recordingSink struct {
	toggles  []geometry.Point
	moves    []geometry.Point
	confirms int
	cancels  int
}

func (r *recordingSink) Toggle(p geometry.Point)       { r.toggles = append(r.toggles, p) }
func (r *recordingSink) PointerMoved(p geometry.Point) { r.moves = append(r.moves, p) }
func (r *recordingSink) Confirm()                      { r.confirms++ }
func (r *recordingSink) Cancel()                       { r.cancels++ }

func TestParseCombo(t *testing.T) {
	mods, key := parseCombo("Ctrl+Alt+Space")
	if !reflect.DeepEqual(mods, []string{"ctrl", "alt"}) || key != "space" {
		t.Errorf("parseCombo = (%v, %q), want ([ctrl alt], space)", mods, key)
	}

	mods, key = parseCombo("Cmd+Shift+m")
	if !reflect.DeepEqual(mods, []string{"cmd", "shift"}) || key != "m" {
		t.Errorf("parseCombo = (%v, %q), want ([cmd shift], m)", mods, key)
	}

	mods, key = parseCombo("option+space")
	if !reflect.DeepEqual(mods, []string{"alt"}) || key != "space" {
		t.Errorf("parseCombo option alias = (%v, %q), want ([alt], space)", mods, key)
	}
}

func feed(events []gohook.Event, mods []string, key string) *recordingSink {
	sink := &recordingSink{}
	ch := make(chan gohook.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	run(ch, mods, key, sink)
	return sink
}

func TestComboFiresToggleAtLastPointerPosition(t *testing.T) {
	sink := feed([]gohook.Event{
		{Kind: gohook.MouseMove, X: 100, Y: 200},
		{Kind: gohook.KeyDown, Rawcode: 162},               // ctrl down
		{Kind: gohook.KeyDown, Rawcode: 164},               // alt down
		{Kind: gohook.KeyDown, Rawcode: 32, Keychar: ' '},  // space down
		{Kind: gohook.KeyUp, Rawcode: 32, Keychar: ' '},
		{Kind: gohook.KeyUp, Rawcode: 162},
		{Kind: gohook.KeyUp, Rawcode: 164},
	}, []string{"ctrl", "alt"}, "space")

	want := []geometry.Point{{X: 100, Y: 200}}
	if !reflect.DeepEqual(sink.toggles, want) {
		t.Errorf("toggles = %v, want %v", sink.toggles, want)
	}
}

func TestHeldTriggerDoesNotRepeatToggle(t *testing.T) {
	sink := feed([]gohook.Event{
		{Kind: gohook.KeyDown, Rawcode: 162},
		{Kind: gohook.KeyDown, Rawcode: 164},
		{Kind: gohook.KeyDown, Rawcode: 32, Keychar: ' '},
		{Kind: gohook.KeyDown, Rawcode: 32, Keychar: ' '}, // OS auto-repeat
		{Kind: gohook.KeyDown, Rawcode: 32, Keychar: ' '},
		{Kind: gohook.KeyUp, Rawcode: 32, Keychar: ' '},
		{Kind: gohook.KeyDown, Rawcode: 32, Keychar: ' '}, // second deliberate press
	}, []string{"ctrl", "alt"}, "space")

	if len(sink.toggles) != 2 {
		t.Errorf("got %d toggles, want 2 (one per press/release pair)", len(sink.toggles))
	}
}

func TestComboWithoutModifiersHeldDoesNotFire(t *testing.T) {
	sink := feed([]gohook.Event{
		{Kind: gohook.KeyDown, Rawcode: 162},
		{Kind: gohook.KeyUp, Rawcode: 162}, // ctrl released again
		{Kind: gohook.KeyDown, Rawcode: 32, Keychar: ' '},
	}, []string{"ctrl", "alt"}, "space")

	if len(sink.toggles) != 0 {
		t.Errorf("toggle fired without modifiers held: %v", sink.toggles)
	}
}

func TestMouseEventsForwarded(t *testing.T) {
	sink := feed([]gohook.Event{
		{Kind: gohook.MouseMove, X: 10, Y: 20},
		{Kind: gohook.MouseMove, X: 11, Y: 21},
		{Kind: gohook.MouseDown, X: 12, Y: 22},
	}, nil, "space")

	if len(sink.moves) != 3 {
		t.Errorf("got %d pointer moves, want 3 (click position is forwarded too)", len(sink.moves))
	}
	if sink.confirms != 1 {
		t.Errorf("got %d confirms, want 1", sink.confirms)
	}
}

func TestEscapeCancels(t *testing.T) {
	sink := feed([]gohook.Event{
		{Kind: gohook.KeyDown, Rawcode: 27},
	}, nil, "space")

	if sink.cancels != 1 {
		t.Errorf("got %d cancels, want 1", sink.cancels)
	}
}
