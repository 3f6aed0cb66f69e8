// Package geometry contains the pure hit-testing math for the radial menu
// and the secondary button bar. No state, no I/O: every function maps one
// pointer sample (plus static layout data) to a selectable index or -1.
package geometry

import (
	"math"
)

// None is returned by the classifiers when the pointer hits nothing.
const None = -1

// Point is a position in screen space. Y grows downward.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle, half-open on Right/Bottom.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Contains reports whether p falls inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Span is a half-open angular range [Start, End) in radians under the menu
// convention: zero points at the menu's top, angles grow clockwise.
type Span struct {
	Start float64
	End   float64
}

// ScreenAngle converts a screen-space offset from the menu center into the
// menu angle convention: 0 at 12 o'clock, pi/2 at 3 o'clock, always in
// [0, 2*pi). Screen Y grows downward, so "up" is -dy.
func ScreenAngle(dx, dy float64) float64 {
	theta := math.Atan2(dx, -dy)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// ClassifyRadial maps a pointer sample to the index of the sector span that
// contains it, or None when the pointer sits inside the inner deadzone,
// beyond the outer boundary, or when no spans are registered.
//
// Spans must be sorted by Start and tile [0, 2*pi) (enforced at
// registration). A pointer exactly on a boundary angle belongs to the span
// starting at that angle, never the one ending there, so boundary hits are
// deterministic.
func ClassifyRadial(p, center Point, inner, outer float64, spans []Span) int {
	if len(spans) == 0 {
		return None
	}
	dx := p.X - center.X
	dy := p.Y - center.Y
	r := math.Hypot(dx, dy)
	if r < inner || r > outer {
		return None
	}
	theta := ScreenAngle(dx, dy)

	// Last span whose Start <= theta. Spans tile the circle, so this is
	// exactly the half-open [Start, End) match with no float cracks.
	lo, hi := 0, len(spans)
	for lo < hi {
		mid := (lo + hi) / 2
		if spans[mid].Start <= theta {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return None // theta below spans[0].Start cannot happen when spans tile from 0
	}
	return lo - 1
}

// ClassifyBar maps a pointer sample to the index of the first button rect
// containing it, after translating the pointer into the bar's local
// coordinates. Rects are ordered left to right and never overlap, so the
// first hit is the only hit.
func ClassifyBar(p, localOrigin Point, rects []Rect) int {
	local := Point{X: p.X - localOrigin.X, Y: p.Y - localOrigin.Y}
	for i, r := range rects {
		if r.Left > local.X {
			break
		}
		if r.Contains(local) {
			return i
		}
	}
	return None
}

// ClampAnchor shifts anchor so a menu with half-extents (mx, my) stays fully
// inside bounds. On an axis where bounds are smaller than the full extent,
// the anchor is centered on that axis instead.
func ClampAnchor(anchor Point, bounds Rect, mx, my float64) Point {
	out := anchor
	out.X = clampAxis(anchor.X, bounds.Left, bounds.Right, mx)
	out.Y = clampAxis(anchor.Y, bounds.Top, bounds.Bottom, my)
	return out
}

func clampAxis(v, lo, hi, m float64) float64 {
	if hi-lo < 2*m {
		return lo + (hi-lo)/2
	}
	if v < lo+m {
		return lo + m
	}
	if v > hi-m {
		return hi - m
	}
	return v
}
