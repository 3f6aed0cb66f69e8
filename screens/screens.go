// Package screens resolves which display contains a screen point, so the
// menu can be clamped to that display's bounds.
package screens

import (
	"image"
	"log"

	"github.com/kbinani/screenshot"

	"handy-menu/geometry"
)

// Provider implements menu.ScreenGeometryProvider over the OS display list.
// The displays hook exists for tests; production code uses New.
type Provider struct {
	numDisplays   func() int
	displayBounds func(i int) image.Rectangle
}

// New returns a provider backed by the real display configuration.
func New() *Provider {
	return &Provider{
		numDisplays:   screenshot.NumActiveDisplays,
		displayBounds: screenshot.GetDisplayBounds,
	}
}

// BoundsContaining returns the bounds of the display containing p. When p
// is on no display (stale pointer position during a display change), the
// primary display is used; with no displays at all a 1920x1080 rect keeps
// clamping well-defined.
func (pr *Provider) BoundsContaining(p geometry.Point) geometry.Rect {
	n := pr.numDisplays()
	if n == 0 {
		log.Printf("screens: no active displays, using fallback bounds")
		return geometry.Rect{Right: 1920, Bottom: 1080}
	}
	pt := image.Pt(int(p.X), int(p.Y))
	for i := 0; i < n; i++ {
		b := pr.displayBounds(i)
		if pt.In(b) {
			return toRect(b)
		}
	}
	return toRect(pr.displayBounds(0))
}

func toRect(b image.Rectangle) geometry.Rect {
	return geometry.Rect{
		Left:   float64(b.Min.X),
		Top:    float64(b.Min.Y),
		Right:  float64(b.Max.X),
		Bottom: float64(b.Max.Y),
	}
}
