package viewer

import (
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/overlay"
)

func TestViewportScale(t *testing.T) {
	v := NewViewport(200, 100, 400, 400)

	assert.Equal(t, 2.0, v.Scale())
	ox, oy := v.Offset()
	assert.Equal(t, 0.0, ox)
	assert.Equal(t, 100.0, oy)

	w, h := v.DisplaySize()
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 200.0, h)
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(640, 480, 1000, 700)

	p := geometry.NewPoint(123.5, 321.25)
	x, y := v.ToView(p)
	back, inside := v.ToImage(x, y)

	assert.True(t, inside)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestViewportOutside(t *testing.T) {
	v := NewViewport(200, 100, 400, 400)

	_, inside := v.ToImage(10, 50)
	assert.False(t, inside, "letterbox area above the image")

	empty := NewViewport(0, 0, 400, 400)
	assert.Equal(t, 0.0, empty.Scale())
	_, inside = empty.ToImage(1, 1)
	assert.False(t, inside)
}

func TestRasterize(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range base.Pix {
		base.Pix[i] = 255
	}

	scene := overlay.Scene{
		Width:    100,
		Height:   100,
		Segments: []overlay.Segment{{From: geometry.NewPoint(0, 50), To: geometry.NewPoint(100, 50)}},
		Markers:  []overlay.Marker{{Center: geometry.NewPoint(20, 20)}},
	}
	style := Style{Color: color.RGBA{R: 255, A: 255}, LineWidth: 4}

	out := Rasterize(base, scene, style)
	require.Equal(t, base.Bounds(), out.Bounds())

	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(50, 50), "on the line")
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(20, 20), "on the marker")
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(80, 10), "background")
	assert.Equal(t, uint8(255), base.Pix[base.PixOffset(50, 50)+1], "base image must not change")
}

func TestRasterizeOverlappingShapes(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 60, 60))
	scene := overlay.Scene{
		Segments: []overlay.Segment{
			{From: geometry.NewPoint(0, 30), To: geometry.NewPoint(60, 30)},
			{From: geometry.NewPoint(60, 30), To: geometry.NewPoint(0, 30)},
		},
		Markers: []overlay.Marker{{Center: geometry.NewPoint(30, 30)}},
	}

	out := Rasterize(base, scene, Style{Color: color.RGBA{G: 255, A: 255}, LineWidth: 3})
	assert.Equal(t, color.RGBA{G: 255, A: 255}, out.RGBAAt(30, 30))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, out.RGBAAt(10, 30))
}

func TestScaleToFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	scaled := ScaleToFit(img, 100, 100)
	assert.Equal(t, image.Rect(0, 0, 100, 50), scaled.Bounds())

	same := ScaleToFit(img, 1000, 1000)
	assert.Same(t, img, same.(*image.RGBA))
}

func TestAnnotationViewTap(t *testing.T) {
	test.NewTempApp(t)

	v := NewAnnotationView()
	v.SetImage(image.NewRGBA(image.Rect(0, 0, 200, 100)))
	v.Resize(fyne.NewSize(400, 400))

	var got []geometry.Point
	v.SetOnTap(func(p geometry.Point) {
		got = append(got, p)
	})

	test.TapAt(v, fyne.NewPos(200, 200))
	test.TapAt(v, fyne.NewPos(200, 20))

	require.Len(t, got, 1, "taps in the letterbox are ignored")
	assert.InDelta(t, 100, got[0].X, 1e-3)
	assert.InDelta(t, 50, got[0].Y, 1e-3)
}

func TestAnnotationViewObjects(t *testing.T) {
	test.NewTempApp(t)

	v := NewAnnotationView()
	v.SetImage(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	v.SetScene(overlay.Scene{
		Segments: []overlay.Segment{{From: geometry.NewPoint(0, 0), To: geometry.NewPoint(100, 100)}},
		Paths: []overlay.Path{{
			Points: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			Closed: true,
		}},
		Markers: []overlay.Marker{{Center: geometry.NewPoint(5, 5)}},
	})
	v.Resize(fyne.NewSize(200, 200))

	objects := test.WidgetRenderer(v).Objects()
	// image, one segment, three path edges, one marker
	require.Len(t, objects, 6)

	_, isImage := objects[0].(*canvas.Image)
	assert.True(t, isImage)
	line, isLine := objects[1].(*canvas.Line)
	require.True(t, isLine)
	assert.Equal(t, fyne.NewPos(0, 0), line.Position1)
	assert.Equal(t, fyne.NewPos(200, 200), line.Position2)
	_, isCircle := objects[5].(*canvas.Circle)
	assert.True(t, isCircle)
}
