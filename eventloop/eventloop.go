// Package eventloop is the hand-off between the input-monitor goroutine and
// the single goroutine that owns menu state. Producers post normalized
// events with non-blocking sends; the loop delivers them to the controller
// in production order on its own goroutine.
package eventloop

import (
	"context"
	"log"

	"handy-menu/geometry"
	"handy-menu/menu"
)

// Kind tags a normalized input event.
type Kind int

const (
	KindToggle Kind = iota
	KindPointerMoved
	KindConfirm
	KindCancel
)

func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindPointerMoved:
		return "pointer-moved"
	case KindConfirm:
		return "confirm"
	case KindCancel:
		return "cancel"
	}
	return "unknown"
}

// Event is one normalized input event. Point is meaningful for toggle and
// pointer-moved events only.
type Event struct {
	Kind  Kind
	Point geometry.Point
}

// Loop owns the controller goroutine. Only Post and PostTask may be called
// from other goroutines.
type Loop struct {
	events chan Event
	tasks  chan func()
}

// New creates an empty loop. Construct the controller with Options.Post set
// to this loop's PostTask, then hand both to Run.
func New() *Loop {
	return &Loop{
		events: make(chan Event, 128),
		tasks:  make(chan func(), 16),
	}
}

// Post enqueues an input event without blocking. Pointer samples beyond the
// queue's capacity are dropped: a newer sample always follows, and stalling
// the input hook is worse than losing a stale position.
func (l *Loop) Post(ev Event) bool {
	select {
	case l.events <- ev:
		return true
	default:
		if ev.Kind != KindPointerMoved {
			log.Printf("eventloop: dropping %s event, queue full", ev.Kind)
		}
		return false
	}
}

// PostTask enqueues a closure to run on the loop goroutine. Used for the
// render surface's display-completion callback.
func (l *Loop) PostTask(fn func()) {
	select {
	case l.tasks <- fn:
	default:
		log.Printf("eventloop: dropping task, queue full")
	}
}

// Run delivers events and tasks to ctrl until ctx is cancelled. It must be
// the only goroutine that touches the controller.
//
// Pending tasks run before the next input event: a display-completion
// callback posted while event N was being delivered must take effect
// before event N+1 is seen.
func (l *Loop) Run(ctx context.Context, ctrl *menu.Controller) error {
	for {
		select {
		case fn := <-l.tasks:
			fn()
			continue
		default:
		}
		select {
		case <-ctx.Done():
			// Force-close any live session: callbacks queued behind
			// this point will never run, so even an OPENING session
			// must release its surface now.
			ctrl.Shutdown()
			return ctx.Err()
		case ev := <-l.events:
			deliver(ctrl, ev)
		case fn := <-l.tasks:
			fn()
		}
	}
}

func deliver(ctrl *menu.Controller, ev Event) {
	switch ev.Kind {
	case KindToggle:
		ctrl.ToggleRequested(ev.Point)
	case KindPointerMoved:
		ctrl.PointerMoved(ev.Point)
	case KindConfirm:
		ctrl.SelectionConfirmed()
	case KindCancel:
		ctrl.CancelRequested()
	}
}
