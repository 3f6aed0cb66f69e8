// Package surface renders menu sessions with Fyne. One borderless window
// is created per session and torn down synchronously when the controller
// disposes it; no window outlives its session.
package surface

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"handy-menu/geometry"
	"handy-menu/menu"
)

// Layout carries the same geometry the controller classifies with, so the
// highlight drawn here always agrees with the hover the controller
// computed.
type Layout struct {
	InnerRadius float64
	OuterRadius float64
	BarGap      float64
}

const (
	framePad  = 10.0
	labelSize = 11.0
)

var (
	sectorFill  = color.NRGBA{R: 51, G: 51, B: 51, A: 217}
	hoverFill   = color.NRGBA{R: 77, G: 128, B: 204, A: 230}
	centerFill  = color.NRGBA{R: 38, G: 38, B: 38, A: 230}
	barFill     = color.NRGBA{R: 64, G: 64, B: 64, A: 217}
	transparent = color.NRGBA{}
)

// Surface implements menu.RenderSurface on a Fyne app. All Fyne calls are
// marshalled onto the render thread; Dispose does not return until the
// window is closed.
type Surface struct {
	app    fyne.App
	layout Layout
}

func New(app fyne.App, layout Layout) *Surface {
	return &Surface{app: app, layout: layout}
}

// window is one session's render state. Mutated only on the Fyne thread.
type window struct {
	win    fyne.Window
	raster *canvas.Raster

	spans []geometry.Span
	rects []geometry.Rect
	defs  []menu.SectorDefinition
	bars  []menu.BarButtonDefinition

	layout     Layout
	barW, barH float64
	width      float64
	height     float64

	hoverKind  menu.HoverKind
	hoverIndex int
}

func (s *Surface) ShowAt(anchor geometry.Point, sectors []menu.SectorDefinition, bars []menu.BarButtonDefinition, shown func()) (menu.SurfaceHandle, error) {
	// Hit-testing happens in screen space around the anchor inside the
	// controller; the window itself is placed by the driver (desktop
	// drivers do not expose absolute window positioning), so the anchor
	// only determines the drawing proportions here.
	w := &window{
		defs:       sectors,
		bars:       bars,
		layout:     s.layout,
		hoverKind:  menu.HoverNone,
		hoverIndex: geometry.None,
	}
	w.spans = make([]geometry.Span, len(sectors))
	for i, d := range sectors {
		w.spans[i] = geometry.Span{Start: d.Start, End: d.End}
	}
	if len(w.spans) > 0 {
		w.spans[0].Start = 0
	}
	w.rects = make([]geometry.Rect, len(bars))
	for i, d := range bars {
		w.rects[i] = d.Bounds
		if d.Bounds.Bottom > w.barH {
			w.barH = d.Bounds.Bottom
		}
	}
	if len(bars) > 0 {
		w.barW = bars[len(bars)-1].Bounds.Right + bars[0].Bounds.Left
		w.barH += bars[0].Bounds.Top
	}

	pie := 2 * (s.layout.OuterRadius + framePad)
	w.width = math.Max(pie, w.barW)
	w.height = pie
	if w.barH > 0 {
		w.height += s.layout.BarGap + w.barH
	}

	fyne.DoAndWait(func() {
		w.build(s.app)
		w.win.Show()
	})
	shown()
	return w, nil
}

func (s *Surface) SetHover(h menu.SurfaceHandle, kind menu.HoverKind, index int) {
	w := h.(*window)
	fyne.Do(func() {
		w.hoverKind, w.hoverIndex = kind, index
		w.raster.Refresh()
	})
}

func (s *Surface) Dispose(h menu.SurfaceHandle) {
	w := h.(*window)
	fyne.DoAndWait(func() {
		w.win.Close()
	})
}

func (w *window) build(app fyne.App) {
	if drv, ok := app.Driver().(desktop.Driver); ok {
		w.win = drv.CreateSplashWindow()
	} else {
		w.win = app.NewWindow("Handy Menu")
	}

	w.raster = canvas.NewRaster(w.draw)
	objects := []fyne.CanvasObject{w.raster}
	objects = append(objects, w.sectorLabels()...)
	objects = append(objects, w.barLabels()...)

	content := container.NewWithoutLayout(objects...)
	size := fyne.NewSize(float32(w.width), float32(w.height))
	w.raster.Resize(size)
	w.win.SetContent(content)
	w.win.Resize(size)
	w.win.SetFixedSize(true)
	w.win.CenterOnScreen()
}

// pieCenter is the pie's center in window-local logical coordinates.
func (w *window) pieCenter() geometry.Point {
	return geometry.Point{
		X: w.width / 2,
		Y: framePad + w.layout.OuterRadius,
	}
}

// barOrigin is the bar's local (0,0) in window coordinates, matching the
// controller's screen-space layout relative to the pie.
func (w *window) barOrigin() geometry.Point {
	return geometry.Point{
		X: w.width/2 - w.barW/2,
		Y: w.pieCenter().Y + w.layout.OuterRadius + w.layout.BarGap,
	}
}

// draw rasterizes the menu by running the same classification the
// controller uses for hit-testing, pixel by pixel.
func (w *window) draw(pw, ph int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	if pw == 0 || ph == 0 {
		return img
	}
	sx := w.width / float64(pw)
	sy := w.height / float64(ph)
	center := w.pieCenter()
	origin := w.barOrigin()
	inner := w.layout.InnerRadius
	outer := w.layout.OuterRadius

	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			p := geometry.Point{X: (float64(x) + 0.5) * sx, Y: (float64(y) + 0.5) * sy}
			img.SetNRGBA(x, y, w.colorAt(p, center, origin, inner, outer))
		}
	}
	return img
}

func (w *window) colorAt(p, center, barOrigin geometry.Point, inner, outer float64) color.NRGBA {
	if math.Hypot(p.X-center.X, p.Y-center.Y) < inner {
		return centerFill
	}
	if i := geometry.ClassifyRadial(p, center, inner, outer, w.spans); i != geometry.None {
		if w.hoverKind == menu.HoverSector && w.hoverIndex == i {
			return hoverFill
		}
		return sectorFill
	}
	if i := geometry.ClassifyBar(p, barOrigin, w.rects); i != geometry.None {
		if w.hoverKind == menu.HoverBar && w.hoverIndex == i {
			return hoverFill
		}
		return barFill
	}
	return transparent
}

func (w *window) sectorLabels() []fyne.CanvasObject {
	center := w.pieCenter()
	labels := make([]fyne.CanvasObject, 0, len(w.defs))
	for i, d := range w.defs {
		mid := w.spans[i].Start + (w.spans[i].End-w.spans[i].Start)/2
		r := w.layout.OuterRadius * 0.65
		pos := geometry.Point{
			X: center.X + r*math.Sin(mid),
			Y: center.Y - r*math.Cos(mid),
		}
		labels = append(labels, newLabel(d.Label, pos))
	}
	return labels
}

func (w *window) barLabels() []fyne.CanvasObject {
	origin := w.barOrigin()
	labels := make([]fyne.CanvasObject, 0, len(w.bars))
	for _, d := range w.bars {
		b := d.Bounds
		pos := geometry.Point{
			X: origin.X + b.Left + b.Width()/2,
			Y: origin.Y + b.Top + b.Height()/2,
		}
		labels = append(labels, newLabel(d.Label, pos))
	}
	return labels
}

func newLabel(text string, at geometry.Point) *canvas.Text {
	t := canvas.NewText(text, color.White)
	t.TextSize = labelSize
	t.Alignment = fyne.TextAlignCenter
	size := t.MinSize()
	t.Resize(size)
	t.Move(fyne.NewPos(float32(at.X)-size.Width/2, float32(at.Y)-size.Height/2))
	return t
}
