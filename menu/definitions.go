package menu

import (
	"errors"
	"fmt"
	"math"

	"handy-menu/geometry"
)

// ErrInvalidDefinition is returned by registration when sector angles do not
// tile the full circle or bar rectangles overlap. Registration is the only
// place this can surface; definitions are immutable afterwards.
var ErrInvalidDefinition = errors.New("invalid menu definition")

// angleTolerance absorbs float rounding when checking that sector spans
// tile [0, 2*pi). Classification itself never compares against End values,
// so the tolerance cannot cause boundary flicker.
const angleTolerance = 1e-9

// SectorDefinition is one wedge of the radial menu. Start/End are radians
// in the menu convention (zero at top, clockwise), half-open [Start, End).
type SectorDefinition struct {
	Index    int
	Label    string
	ActionID string
	Start    float64
	End      float64
	Icon     string
}

// BarButtonDefinition is one button of the secondary bar below the pie.
// Bounds are local to the bar's top-left corner.
type BarButtonDefinition struct {
	Index    int
	Label    string
	ActionID string
	Bounds   geometry.Rect
}

// Item is a label/action pair used by the layout helpers below.
type Item struct {
	Label    string
	ActionID string
	Icon     string
}

// EvenSectors lays items out as equal wedges starting at the top, clockwise,
// in item order.
func EvenSectors(items []Item) []SectorDefinition {
	n := len(items)
	defs := make([]SectorDefinition, n)
	for i, it := range items {
		defs[i] = SectorDefinition{
			Index:    i,
			Label:    it.Label,
			ActionID: it.ActionID,
			Start:    2 * math.Pi * float64(i) / float64(n),
			End:      2 * math.Pi * float64(i+1) / float64(n),
			Icon:     it.Icon,
		}
	}
	return defs
}

// BarRow lays items out as a single row of equal buttons with fixed spacing,
// left to right, in item order.
func BarRow(items []Item, buttonWidth, buttonHeight, spacing float64) []BarButtonDefinition {
	defs := make([]BarButtonDefinition, len(items))
	for i, it := range items {
		left := spacing + float64(i)*(buttonWidth+spacing)
		defs[i] = BarButtonDefinition{
			Index:    i,
			Label:    it.Label,
			ActionID: it.ActionID,
			Bounds: geometry.Rect{
				Left:   left,
				Top:    spacing,
				Right:  left + buttonWidth,
				Bottom: spacing + buttonHeight,
			},
		}
	}
	return defs
}

func validateSectors(defs []SectorDefinition) error {
	if len(defs) == 0 {
		return fmt.Errorf("%w: no sectors", ErrInvalidDefinition)
	}
	for i, d := range defs {
		if d.Index != i {
			return fmt.Errorf("%w: sector %d has index %d, want sequential indexes", ErrInvalidDefinition, i, d.Index)
		}
		if !(d.Start < d.End) {
			return fmt.Errorf("%w: sector %d has empty span [%v, %v)", ErrInvalidDefinition, i, d.Start, d.End)
		}
	}
	if math.Abs(defs[0].Start) > angleTolerance {
		return fmt.Errorf("%w: first sector starts at %v, want 0", ErrInvalidDefinition, defs[0].Start)
	}
	for i := 0; i < len(defs)-1; i++ {
		if math.Abs(defs[i].End-defs[i+1].Start) > angleTolerance {
			return fmt.Errorf("%w: gap or overlap between sector %d end (%v) and sector %d start (%v)",
				ErrInvalidDefinition, i, defs[i].End, i+1, defs[i+1].Start)
		}
	}
	if math.Abs(defs[len(defs)-1].End-2*math.Pi) > angleTolerance {
		return fmt.Errorf("%w: last sector ends at %v, want 2*pi", ErrInvalidDefinition, defs[len(defs)-1].End)
	}
	return nil
}

func validateBarButtons(defs []BarButtonDefinition) error {
	for i, d := range defs {
		if d.Index != i {
			return fmt.Errorf("%w: bar button %d has index %d, want sequential indexes", ErrInvalidDefinition, i, d.Index)
		}
		b := d.Bounds
		if !(b.Left < b.Right) || !(b.Top < b.Bottom) {
			return fmt.Errorf("%w: bar button %d has empty bounds %+v", ErrInvalidDefinition, i, b)
		}
		if i > 0 && defs[i-1].Bounds.Right > b.Left {
			return fmt.Errorf("%w: bar buttons %d and %d overlap or are out of order", ErrInvalidDefinition, i-1, i)
		}
	}
	return nil
}

// sectorSpans derives the classification spans from validated definitions.
// The first start is snapped to exactly zero so the derived partition is
// total over [0, 2*pi) regardless of rounding in the registered values.
func sectorSpans(defs []SectorDefinition) []geometry.Span {
	spans := make([]geometry.Span, len(defs))
	for i, d := range defs {
		spans[i] = geometry.Span{Start: d.Start, End: d.End}
	}
	spans[0].Start = 0
	return spans
}

func barRects(defs []BarButtonDefinition) []geometry.Rect {
	rects := make([]geometry.Rect, len(defs))
	for i, d := range defs {
		rects[i] = d.Bounds
	}
	return rects
}

// barExtent returns the width and height of the bar's local bounding box,
// including trailing spacing symmetric with the leading edge.
func barExtent(defs []BarButtonDefinition) (w, h float64) {
	if len(defs) == 0 {
		return 0, 0
	}
	first := defs[0].Bounds
	last := defs[len(defs)-1].Bounds
	w = last.Right + first.Left // trailing margin mirrors the leading one
	for _, d := range defs {
		if d.Bounds.Bottom > h {
			h = d.Bounds.Bottom
		}
	}
	h += first.Top
	return w, h
}
