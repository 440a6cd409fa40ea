package viewer

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/overlay"
)

// AnnotationView shows an image with its overlay scene and reports taps in
// image coordinates
type AnnotationView struct {
	widget.BaseWidget

	image    *canvas.Image
	imgSize  fyne.Size
	scene    overlay.Scene
	style    Style
	viewport Viewport

	onTap func(p geometry.Point)
}

// NewAnnotationView creates an empty annotation view
func NewAnnotationView() *AnnotationView {
	v := &AnnotationView{
		image: &canvas.Image{FillMode: canvas.ImageFillStretch},
		style: DefaultStyle(),
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetOnTap sets the callback for taps inside the image
func (v *AnnotationView) SetOnTap(callback func(p geometry.Point)) {
	v.onTap = callback
}

// SetImage replaces the displayed image
func (v *AnnotationView) SetImage(img image.Image) {
	v.image.Image = img
	if img != nil {
		b := img.Bounds()
		v.imgSize = fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	} else {
		v.imgSize = fyne.Size{}
	}
	v.image.Refresh()
	v.Refresh()
}

// SetScene replaces the overlay
func (v *AnnotationView) SetScene(scene overlay.Scene) {
	v.scene = scene
	v.Refresh()
}

// SetStyle changes colour and line width of the overlay
func (v *AnnotationView) SetStyle(style Style) {
	v.style = style
	v.Refresh()
}

// Style returns the current overlay style
func (v *AnnotationView) Style() Style {
	return v.style
}

// Tapped converts the tap to image coordinates and forwards it
func (v *AnnotationView) Tapped(event *fyne.PointEvent) {
	if v.onTap == nil || v.image.Image == nil {
		return
	}
	p, inside := v.viewport.ToImage(float64(event.Position.X), float64(event.Position.Y))
	if inside {
		v.onTap(p)
	}
}

// CreateRenderer creates the renderer for the widget
func (v *AnnotationView) CreateRenderer() fyne.WidgetRenderer {
	return &annotationRenderer{view: v}
}

// annotationRenderer implements fyne.WidgetRenderer
type annotationRenderer struct {
	view    *AnnotationView
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *annotationRenderer) Layout(size fyne.Size) {
	r.size = size
	r.rebuild()
}

func (r *annotationRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *annotationRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.view)
}

func (r *annotationRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *annotationRenderer) Destroy() {}

// rebuild lays out the image and converts the scene into canvas objects
func (r *annotationRenderer) rebuild() {
	v := r.view
	v.viewport = NewViewport(
		float64(v.imgSize.Width), float64(v.imgSize.Height),
		float64(r.size.Width), float64(r.size.Height),
	)

	r.objects = nil
	if v.image.Image == nil {
		return
	}

	ox, oy := v.viewport.Offset()
	w, h := v.viewport.DisplaySize()
	v.image.Move(fyne.NewPos(float32(ox), float32(oy)))
	v.image.Resize(fyne.NewSize(float32(w), float32(h)))
	r.objects = append(r.objects, v.image)

	scale := v.viewport.Scale()
	stroke := float32(v.style.LineWidth * scale)
	if stroke < 1 {
		stroke = 1
	}
	col := v.style.Color
	if col == nil {
		col = Palette["red"]
	}

	for _, seg := range v.scene.Segments {
		r.addLine(seg.From, seg.To, col, stroke)
	}
	for _, path := range v.scene.Paths {
		pts := path.Points
		for i := 1; i < len(pts); i++ {
			r.addLine(pts[i-1], pts[i], col, stroke)
		}
		if path.Closed && len(pts) > 2 {
			r.addLine(pts[len(pts)-1], pts[0], col, stroke)
		}
	}
	for _, m := range v.scene.Markers {
		x, y := v.viewport.ToView(m.Center)
		size := stroke * 4
		dot := canvas.NewCircle(col)
		dot.Resize(fyne.NewSize(size, size))
		dot.Move(fyne.NewPos(float32(x)-size/2, float32(y)-size/2))
		r.objects = append(r.objects, dot)
	}
}

func (r *annotationRenderer) addLine(a, b geometry.Point, col color.Color, stroke float32) {
	x1, y1 := r.view.viewport.ToView(a)
	x2, y2 := r.view.viewport.ToView(b)

	line := canvas.NewLine(col)
	line.StrokeWidth = stroke
	line.Position1 = fyne.NewPos(float32(x1), float32(y1))
	line.Position2 = fyne.NewPos(float32(x2), float32(y2))
	r.objects = append(r.objects, line)
}
