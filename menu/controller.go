package menu

import (
	"fmt"
	"log"
	"time"

	"handy-menu/geometry"
)

// RenderSurface draws one menu session. Implementations are called only
// from the controller's goroutine. ShowAt creates the surface and requests
// display; shown must be invoked (from any goroutine) once the surface is
// actually visible. Dispose must not return until the surface's resources
// are fully released.
type RenderSurface interface {
	ShowAt(anchor geometry.Point, sectors []SectorDefinition, bars []BarButtonDefinition, shown func()) (SurfaceHandle, error)
	SetHover(h SurfaceHandle, kind HoverKind, index int)
	Dispose(h SurfaceHandle)
}

// ActionDispatcher executes a confirmed action. Invoke is fire-and-forget:
// it must not block and its failures are not the controller's concern.
type ActionDispatcher interface {
	Invoke(actionID string)
}

// ScreenGeometryProvider reports the bounds of the display containing a
// point, used to keep the menu fully on-screen.
type ScreenGeometryProvider interface {
	BoundsContaining(p geometry.Point) geometry.Rect
}

// Options configures a Controller. Post marshals a closure onto the
// controller's own goroutine and is required: it is how the surface's
// display-completion callback re-enters controller state safely.
type Options struct {
	Surface    RenderSurface
	Dispatcher ActionDispatcher
	Screens    ScreenGeometryProvider
	Post       func(func())

	InnerRadius float64 // deadzone radius
	OuterRadius float64 // pie radius
	Margin      float64 // screen-edge margin beyond the pie
	BarGap      float64 // vertical gap between pie and bar

	ToggleDebounce time.Duration

	// Now is a clock override for tests; defaults to time.Now.
	Now func() time.Time
}

// Controller runs the menu state machine. All methods must be called from
// a single goroutine (the event loop); the input monitor never calls it
// directly. It owns at most one live session and guarantees the previous
// session's surface is disposed before a new one is created.
type Controller struct {
	surface    RenderSurface
	dispatcher ActionDispatcher
	screens    ScreenGeometryProvider
	post       func(func())

	inner    float64
	outer    float64
	margin   float64
	barGap   float64
	debounce time.Duration
	now      func() time.Time

	sectors []SectorDefinition
	spans   []geometry.Span
	bars    []BarButtonDefinition
	rects   []geometry.Rect
	barW    float64
	barH    float64

	sess       *Session
	lastToggle time.Time
}

// NewController wires a controller from its collaborators.
func NewController(opts Options) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		surface:    opts.Surface,
		dispatcher: opts.Dispatcher,
		screens:    opts.Screens,
		post:       opts.Post,
		inner:      opts.InnerRadius,
		outer:      opts.OuterRadius,
		margin:     opts.Margin,
		barGap:     opts.BarGap,
		debounce:   opts.ToggleDebounce,
		now:        now,
	}
}

// Phase reports the current session phase; PhaseClosed when no session.
func (c *Controller) Phase() Phase {
	if c.sess == nil {
		return PhaseClosed
	}
	return c.sess.phase
}

// RegisterSectors validates and installs the radial definitions. Fails when
// the spans do not tile [0, 2*pi) or while a session is live.
func (c *Controller) RegisterSectors(defs []SectorDefinition) error {
	if c.sess != nil {
		return fmt.Errorf("cannot register sectors while menu session is %s", c.sess.phase)
	}
	if err := validateSectors(defs); err != nil {
		return err
	}
	c.sectors = append([]SectorDefinition(nil), defs...)
	c.spans = sectorSpans(c.sectors)
	return nil
}

// RegisterBarButtons validates and installs the secondary-bar definitions.
func (c *Controller) RegisterBarButtons(defs []BarButtonDefinition) error {
	if c.sess != nil {
		return fmt.Errorf("cannot register bar buttons while menu session is %s", c.sess.phase)
	}
	if err := validateBarButtons(defs); err != nil {
		return err
	}
	c.bars = append([]BarButtonDefinition(nil), defs...)
	c.rects = barRects(c.bars)
	c.barW, c.barH = barExtent(c.bars)
	return nil
}

// ToggleRequested opens the menu at p when closed and closes it otherwise.
// Raw triggers can repeat, so toggles closer together than the configured
// debounce interval are dropped here, keeping the input monitor dumb.
func (c *Controller) ToggleRequested(p geometry.Point) {
	t := c.now()
	if c.debounce > 0 && !c.lastToggle.IsZero() && t.Sub(c.lastToggle) < c.debounce {
		return
	}
	// A toggle ignored during teardown is not accepted, so it does not
	// refresh the debounce window either.
	if c.Phase() == PhaseClosing {
		return
	}
	c.lastToggle = t

	switch c.Phase() {
	case PhaseClosed:
		c.open(p)
	case PhaseOpening:
		// Abort the in-flight open. Teardown runs when the surface
		// reports display completion, so disposal happens exactly once.
		log.Printf("menu: toggle during OPENING, aborting open")
		c.sess.phase = PhaseClosing
	case PhaseOpen:
		c.close(false)
	}
}

// PointerMoved recomputes hover while the menu is open. Samples arriving in
// any other phase are discarded.
func (c *Controller) PointerMoved(p geometry.Point) {
	s := c.sess
	if s == nil || s.phase != PhaseOpen {
		return
	}
	kind, idx := c.classify(p, s.anchor)
	if kind == s.hoverKind && idx == s.hoverIndex {
		return
	}
	s.hoverKind, s.hoverIndex = kind, idx
	c.surface.SetHover(s.surface, kind, idx)
}

// SelectionConfirmed closes the session and dispatches the hovered action,
// if any. Confirmation in any phase but OPEN is ignored.
func (c *Controller) SelectionConfirmed() {
	if c.Phase() != PhaseOpen {
		return
	}
	c.close(true)
}

// CancelRequested closes the menu without dispatching, like a toggle while
// open but exempt from debounce. A cancel while closed is a no-op.
func (c *Controller) CancelRequested() {
	switch c.Phase() {
	case PhaseOpening:
		c.sess.phase = PhaseClosing
	case PhaseOpen:
		c.close(false)
	}
}

// Shutdown force-closes any live session, whatever its phase. Meant for the
// event loop's exit path: once the loop stops, a pending display-completion
// callback can never be delivered, so an OPENING session must be torn down
// here or its surface leaks.
func (c *Controller) Shutdown() {
	if c.sess != nil {
		c.teardown(c.sess)
	}
}

func (c *Controller) open(p geometry.Point) {
	if len(c.sectors) == 0 {
		log.Printf("menu: toggle ignored, no sectors registered")
		return
	}
	bounds := c.screens.BoundsContaining(p)
	anchor := geometry.ClampAnchor(p, bounds, c.halfExtentX(), c.halfExtentY())
	s := &Session{
		phase:      PhaseOpening,
		anchor:     anchor,
		hoverKind:  HoverNone,
		hoverIndex: geometry.None,
	}
	c.sess = s
	shown := func() {
		c.post(func() { c.surfaceShown(s) })
	}
	h, err := c.surface.ShowAt(anchor, c.sectors, c.bars, shown)
	if err != nil {
		log.Printf("menu: surface failed to open: %v", err)
		c.sess = nil
		return
	}
	s.surface = h
	log.Printf("menu: opening at (%.0f, %.0f)", anchor.X, anchor.Y)
}

// surfaceShown is posted back onto the controller goroutine once the
// surface has finished displaying. A stale callback from an already torn
// down session is ignored.
func (c *Controller) surfaceShown(s *Session) {
	if c.sess != s {
		return
	}
	switch s.phase {
	case PhaseOpening:
		s.phase = PhaseOpen
	case PhaseClosing:
		// The open was aborted mid-flight; finish the teardown now.
		c.teardown(s)
	}
}

// close tears the session down and, on a confirmed selection with a live
// hover, dispatches the hovered action. Teardown always completes first:
// the dispatcher can never observe a half-closed menu, and its failures
// cannot keep the menu open.
func (c *Controller) close(confirmed bool) {
	s := c.sess
	s.phase = PhaseClosing
	actionID := ""
	if confirmed {
		actionID = c.hoveredAction(s)
	}
	c.teardown(s)
	if actionID != "" {
		log.Printf("menu: dispatching %q", actionID)
		c.dispatcher.Invoke(actionID)
	}
}

// teardown synchronously releases the session's surface and returns the
// controller to CLOSED. It does not return until Dispose has, so the next
// open can never observe the previous session's resources.
func (c *Controller) teardown(s *Session) {
	s.hoverKind, s.hoverIndex = HoverNone, geometry.None
	if s.surface != nil {
		c.surface.Dispose(s.surface)
		s.surface = nil
	}
	s.phase = PhaseClosed
	c.sess = nil
	log.Printf("menu: closed")
}

func (c *Controller) hoveredAction(s *Session) string {
	switch s.hoverKind {
	case HoverSector:
		return c.sectors[s.hoverIndex].ActionID
	case HoverBar:
		return c.bars[s.hoverIndex].ActionID
	}
	return ""
}

func (c *Controller) classify(p, anchor geometry.Point) (HoverKind, int) {
	if i := geometry.ClassifyRadial(p, anchor, c.inner, c.outer, c.spans); i != geometry.None {
		return HoverSector, i
	}
	if len(c.rects) > 0 {
		if i := geometry.ClassifyBar(p, c.barOrigin(anchor), c.rects); i != geometry.None {
			return HoverBar, i
		}
	}
	return HoverNone, geometry.None
}

// barOrigin is the screen position of the bar's local (0,0): centered under
// the pie, barGap below its outer edge.
func (c *Controller) barOrigin(anchor geometry.Point) geometry.Point {
	return geometry.Point{
		X: anchor.X - c.barW/2,
		Y: anchor.Y + c.outer + c.barGap,
	}
}

func (c *Controller) halfExtentX() float64 {
	m := c.outer + c.margin
	if half := c.barW/2 + c.margin; half > m {
		m = half
	}
	return m
}

func (c *Controller) halfExtentY() float64 {
	m := c.outer + c.margin
	// The bar hangs below the pie; its bottom edge keeps the same margin
	// from the screen edge as every other side.
	if c.barH > 0 {
		m += c.barGap + c.barH
	}
	return m
}
