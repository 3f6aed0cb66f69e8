package geometry

import (
	"math"
	"testing"
)

// eightSpans builds eight equal spans starting at the top, clockwise, the
// same way registration does for an evenly divided menu.
func eightSpans() []Span {
	spans := make([]Span, 8)
	for i := 0; i < 8; i++ {
		spans[i] = Span{
			Start: 2 * math.Pi * float64(i) / 8,
			End:   2 * math.Pi * float64(i+1) / 8,
		}
	}
	return spans
}

func TestClassifyRadialDeadzone(t *testing.T) {
	center := Point{X: 100, Y: 100}
	spans := eightSpans()

	// Sweep points strictly inside the deadzone in several directions.
	for _, d := range []Point{{0, 0}, {10, 0}, {-10, 5}, {0, -29}, {20, 20}} {
		p := Point{X: center.X + d.X, Y: center.Y + d.Y}
		if r := math.Hypot(d.X, d.Y); r >= 30 {
			continue
		}
		if got := ClassifyRadial(p, center, 30, 120, spans); got != None {
			t.Errorf("point %+v inside deadzone classified as %d, want None", p, got)
		}
	}
}

func TestClassifyRadialOutsideBoundary(t *testing.T) {
	center := Point{X: 0, Y: 0}
	p := Point{X: 0, Y: -121}
	if got := ClassifyRadial(p, center, 30, 120, eightSpans()); got != None {
		t.Errorf("point beyond outer boundary classified as %d, want None", got)
	}
}

func TestClassifyRadialClockDirections(t *testing.T) {
	center := Point{X: 500, Y: 500}
	spans := eightSpans()

	cases := []struct {
		name string
		p    Point
		want int
	}{
		// 12 o'clock is angle 0, the start of sector 0.
		{"12 o'clock", Point{X: 500, Y: 440}, 0},
		// 3 o'clock is pi/2 clockwise from top: start of sector 2.
		{"3 o'clock", Point{X: 560, Y: 500}, 2},
		{"6 o'clock", Point{X: 500, Y: 560}, 4},
		{"9 o'clock", Point{X: 440, Y: 500}, 6},
	}
	for _, tc := range cases {
		if got := ClassifyRadial(tc.p, center, 30, 120, spans); got != tc.want {
			t.Errorf("%s: got sector %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestClassifyRadialBoundaryIsDeterministic(t *testing.T) {
	center := Point{X: 500, Y: 500}
	spans := eightSpans()

	// 3 o'clock (angle pi/2) is exactly the boundary where sector 1 ends
	// and sector 2 starts; the half-open rule assigns it to sector 2.
	// 6 o'clock (angle pi) is the sector 3/4 boundary, assigned to 4.
	boundaries := []struct {
		p    Point
		want int
	}{
		{Point{X: 580, Y: 500}, 2},
		{Point{X: 500, Y: 580}, 4},
	}
	for _, b := range boundaries {
		for i := 0; i < 100; i++ {
			if got := ClassifyRadial(b.p, center, 30, 120, spans); got != b.want {
				t.Fatalf("iteration %d: boundary point %+v classified as %d, want %d",
					i, b.p, got, b.want)
			}
		}
	}
}

func TestClassifyRadialPartitionIsTotal(t *testing.T) {
	center := Point{X: 0, Y: 0}
	spans := eightSpans()

	// Every angle inside the ring must land in exactly one sector. Sample
	// at step midpoints so no sample sits on a sector boundary.
	for i := 0; i < 3600; i++ {
		theta := 2 * math.Pi * (float64(i) + 0.5) / 3600
		p := Point{X: 75 * math.Sin(theta), Y: -75 * math.Cos(theta)}
		got := ClassifyRadial(p, center, 30, 120, spans)
		if got == None {
			t.Fatalf("angle %v inside ring has no sector", theta)
		}
		want := int(theta / (2 * math.Pi / 8))
		if want > 7 {
			want = 7
		}
		if got != want {
			t.Fatalf("angle %v: got sector %d, want %d", theta, got, want)
		}
	}
}

func TestScreenAngleRange(t *testing.T) {
	for _, d := range []Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {-3, -7}, {2, 5}} {
		theta := ScreenAngle(d.X, d.Y)
		if theta < 0 || theta >= 2*math.Pi {
			t.Errorf("ScreenAngle(%v, %v) = %v, outside [0, 2pi)", d.X, d.Y, theta)
		}
	}
	if got := ScreenAngle(0, -1); got != 0 {
		t.Errorf("up should be angle 0, got %v", got)
	}
	if got := ScreenAngle(1, 0); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("right should be pi/2, got %v", got)
	}
}

func TestClassifyBar(t *testing.T) {
	origin := Point{X: 300, Y: 700}
	rects := []Rect{
		{Left: 8, Top: 5, Right: 68, Bottom: 45},
		{Left: 76, Top: 5, Right: 136, Bottom: 45},
		{Left: 144, Top: 5, Right: 204, Bottom: 45},
	}

	cases := []struct {
		p    Point
		want int
	}{
		{Point{X: 310, Y: 710}, 0},
		{Point{X: 380, Y: 740}, 1},
		{Point{X: 450, Y: 720}, 2},
		{Point{X: 372, Y: 710}, None}, // gap between buttons 0 and 1
		{Point{X: 310, Y: 760}, None}, // below the bar
		{Point{X: 290, Y: 710}, None}, // left of the bar entirely
	}
	for _, tc := range cases {
		if got := ClassifyBar(tc.p, origin, rects); got != tc.want {
			t.Errorf("ClassifyBar(%+v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestClampAnchor(t *testing.T) {
	screen := Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}

	got := ClampAnchor(Point{X: 10, Y: 10}, screen, 180, 180)
	if got.X != 180 || got.Y != 180 {
		t.Errorf("near-corner anchor clamped to %+v, want (180, 180)", got)
	}

	got = ClampAnchor(Point{X: 1915, Y: 540}, screen, 180, 180)
	if got.X != 1740 || got.Y != 540 {
		t.Errorf("near-edge anchor clamped to %+v, want (1740, 540)", got)
	}

	got = ClampAnchor(Point{X: 960, Y: 540}, screen, 180, 180)
	if got.X != 960 || got.Y != 540 {
		t.Errorf("interior anchor moved to %+v, want (960, 540)", got)
	}
}

func TestClampAnchorDegenerateScreen(t *testing.T) {
	tiny := Rect{Left: 0, Top: 0, Right: 300, Bottom: 1080}
	got := ClampAnchor(Point{X: 10, Y: 540}, tiny, 180, 180)
	if got.X != 150 {
		t.Errorf("degenerate axis should center at 150, got %v", got.X)
	}
	if got.Y != 540 {
		t.Errorf("normal axis should stay at 540, got %v", got.Y)
	}
}
