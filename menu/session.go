package menu

import "handy-menu/geometry"

// Phase is the lifecycle phase of a menu session.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpening
	PhaseOpen
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "CLOSED"
	case PhaseOpening:
		return "OPENING"
	case PhaseOpen:
		return "OPEN"
	case PhaseClosing:
		return "CLOSING"
	}
	return "UNKNOWN"
}

// HoverKind says which part of the menu the pointer is over.
type HoverKind int

const (
	HoverNone HoverKind = iota
	HoverSector
	HoverBar
)

func (k HoverKind) String() string {
	switch k {
	case HoverSector:
		return "sector"
	case HoverBar:
		return "bar"
	}
	return "none"
}

// SurfaceHandle identifies one shown render surface. Opaque to the
// controller; only ever passed back to the RenderSurface that produced it.
type SurfaceHandle interface{}

// Session is one open-to-close lifecycle of the menu. The controller owns
// at most one at a time and is the only writer. The surface handle is set
// exactly once when the session is created and cleared exactly once during
// teardown; teardown is synchronous, so no handle can leak into the next
// session.
type Session struct {
	phase      Phase
	anchor     geometry.Point
	hoverKind  HoverKind
	hoverIndex int
	surface    SurfaceHandle
}

// Anchor returns the clamped screen point the session is centered on.
func (s *Session) Anchor() geometry.Point { return s.anchor }
