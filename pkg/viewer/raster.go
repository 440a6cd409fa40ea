package viewer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/overlay"
)

// circleSegments is the number of edges used to fill a marker dot
const circleSegments = 24

// Style controls how an overlay is drawn
type Style struct {
	Color     color.Color
	LineWidth float64 // in image pixels
}

// Palette lists the selectable overlay colours
var Palette = map[string]color.RGBA{
	"red":    {R: 219, G: 40, B: 40, A: 255},
	"blue":   {R: 33, G: 133, B: 208, A: 255},
	"green":  {R: 33, G: 186, B: 69, A: 255},
	"purple": {R: 163, G: 51, B: 200, A: 255},
}

// DefaultStyle is a red overlay with a 2 pixel stroke
func DefaultStyle() Style {
	return Style{Color: Palette["red"], LineWidth: 2}
}

// Rasterize draws scene on top of a copy of base
func Rasterize(base image.Image, scene overlay.Scene, style Style) *image.RGBA {
	bounds := base.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), base, bounds.Min, draw.Src)

	if style.LineWidth <= 0 {
		style.LineWidth = 1
	}
	if style.Color == nil {
		style.Color = Palette["red"]
	}

	z := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	z.DrawOp = draw.Over

	for _, seg := range scene.Segments {
		strokeSegment(z, seg.From, seg.To, style.LineWidth)
	}
	for _, path := range scene.Paths {
		pts := path.Points
		for i := 1; i < len(pts); i++ {
			strokeSegment(z, pts[i-1], pts[i], style.LineWidth)
		}
		if path.Closed && len(pts) > 2 {
			strokeSegment(z, pts[len(pts)-1], pts[0], style.LineWidth)
		}
	}
	for _, m := range scene.Markers {
		fillCircle(z, m.Center, style.LineWidth*2)
	}

	z.Draw(dst, dst.Bounds(), image.NewUniform(style.Color), image.Point{})
	return dst
}

// strokeSegment adds the outline of a thick line to the rasterizer as a
// quad. Overlapping shapes only merge when they share a winding direction,
// so quads and circles are both wound clockwise.
func strokeSegment(z *vector.Rasterizer, a, b geometry.Point, width float64) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		fillCircle(z, a, width/2)
		return
	}
	nx := -d.Y / length * width / 2
	ny := d.X / length * width / 2

	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
}

func fillCircle(z *vector.Rasterizer, c geometry.Point, radius float64) {
	for i := 0; i < circleSegments; i++ {
		phi := -float64(i) * 2 * math.Pi / circleSegments
		x := float32(c.X + radius*math.Cos(phi))
		y := float32(c.Y + radius*math.Sin(phi))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// ScaleToFit returns img scaled down to fit within maxWidth x maxHeight.
// Images that already fit are returned unchanged.
func ScaleToFit(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	v := NewViewport(float64(b.Dx()), float64(b.Dy()), float64(maxWidth), float64(maxHeight))
	s := v.Scale()
	if s <= 0 || s >= 1 {
		return img
	}
	w, h := v.DisplaySize()
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
