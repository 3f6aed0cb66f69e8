package screens

import (
	"image"
	"testing"

	"handy-menu/geometry"
)

func twoDisplayProvider() *Provider {
	displays := []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, 0, 3840, 1200),
	}
	return &Provider{
		numDisplays:   func() int { return len(displays) },
		displayBounds: func(i int) image.Rectangle { return displays[i] },
	}
}

func TestBoundsContainingPicksTheRightDisplay(t *testing.T) {
	p := twoDisplayProvider()

	got := p.BoundsContaining(geometry.Point{X: 100, Y: 100})
	if got.Right != 1920 || got.Bottom != 1080 {
		t.Errorf("point on primary resolved to %+v", got)
	}

	got = p.BoundsContaining(geometry.Point{X: 2500, Y: 600})
	if got.Left != 1920 || got.Right != 3840 || got.Bottom != 1200 {
		t.Errorf("point on secondary resolved to %+v", got)
	}
}

func TestBoundsContainingFallsBackToPrimary(t *testing.T) {
	p := twoDisplayProvider()
	got := p.BoundsContaining(geometry.Point{X: -500, Y: -500})
	if got.Left != 0 || got.Right != 1920 {
		t.Errorf("off-screen point resolved to %+v, want primary display", got)
	}
}

func TestBoundsContainingNoDisplays(t *testing.T) {
	p := &Provider{
		numDisplays:   func() int { return 0 },
		displayBounds: func(i int) image.Rectangle { return image.Rectangle{} },
	}
	got := p.BoundsContaining(geometry.Point{})
	if got.Width() <= 0 || got.Height() <= 0 {
		t.Errorf("fallback bounds are degenerate: %+v", got)
	}
}
