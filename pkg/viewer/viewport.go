package viewer

import (
	"math"

	"github.com/philipparndt/gohip/pkg/geometry"
)

// Viewport maps between image coordinates and the coordinates of the widget
// the image is shown in. The image is scaled to fit and centered.
type Viewport struct {
	ImageWidth  float64
	ImageHeight float64
	ViewWidth   float64
	ViewHeight  float64
}

// NewViewport creates a viewport showing an image of the given size in a
// view of the given size
func NewViewport(imageWidth, imageHeight, viewWidth, viewHeight float64) Viewport {
	return Viewport{
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		ViewWidth:   viewWidth,
		ViewHeight:  viewHeight,
	}
}

// Scale returns the fit-to-view scale factor, 0 for an empty image
func (v Viewport) Scale() float64 {
	if v.ImageWidth <= 0 || v.ImageHeight <= 0 {
		return 0
	}
	return math.Min(v.ViewWidth/v.ImageWidth, v.ViewHeight/v.ImageHeight)
}

// Offset returns the top-left corner of the image in view coordinates
func (v Viewport) Offset() (float64, float64) {
	s := v.Scale()
	return (v.ViewWidth - v.ImageWidth*s) / 2, (v.ViewHeight - v.ImageHeight*s) / 2
}

// DisplaySize returns the size of the scaled image
func (v Viewport) DisplaySize() (float64, float64) {
	s := v.Scale()
	return v.ImageWidth * s, v.ImageHeight * s
}

// ToImage converts view coordinates to image coordinates. The boolean is
// false when the position lies outside the image.
func (v Viewport) ToImage(x, y float64) (geometry.Point, bool) {
	s := v.Scale()
	if s <= 0 {
		return geometry.Point{}, false
	}
	ox, oy := v.Offset()
	p := geometry.Point{X: (x - ox) / s, Y: (y - oy) / s}
	inside := p.X >= 0 && p.Y >= 0 && p.X <= v.ImageWidth && p.Y <= v.ImageHeight
	return p, inside
}

// ToView converts image coordinates to view coordinates
func (v Viewport) ToView(p geometry.Point) (float64, float64) {
	s := v.Scale()
	ox, oy := v.Offset()
	return ox + p.X*s, oy + p.Y*s
}
