package geometry

import "math"

// Full-ellipse sweep bounds in degrees
const (
	SweepStart = 0.0
	SweepEnd   = 360.0
)

// DefaultOutlineSegments is the number of segments used to draw an ellipse
const DefaultOutlineSegments = 64

// EllipseParameters describes a rotated ellipse ready to be drawn.
// Center and semi-axes are truncated to whole pixels.
type EllipseParameters struct {
	Center     Point
	SemiMajor  float64
	SemiMinor  float64
	Rotation   ScreenAngle
	SweepStart float64
	SweepEnd   float64
}

// Tuple returns (centerX, centerY, semiMajor, semiMinor, rotation, sweepStart, sweepEnd)
// in the argument order of a canvas ellipse primitive
func (e EllipseParameters) Tuple() [7]float64 {
	return [7]float64{
		e.Center.X,
		e.Center.Y,
		e.SemiMajor,
		e.SemiMinor,
		e.Rotation.Radians(),
		e.SweepStart,
		e.SweepEnd,
	}
}

// Finite reports whether every parameter is a finite number
func (e EllipseParameters) Finite() bool {
	return e.Center.Finite() &&
		isFinite(e.SemiMajor) &&
		isFinite(e.SemiMinor) &&
		isFinite(e.Rotation.Radians())
}

// Outline samples the ellipse as a closed polyline. The first point is
// repeated at the end.
func (e EllipseParameters) Outline(segments int) []Point {
	if segments < 3 {
		segments = DefaultOutlineSegments
	}
	sinR, cosR := math.Sincos(e.Rotation.Radians())
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		phi := float64(i) * 2.0 * math.Pi / float64(segments)
		sinP, cosP := math.Sincos(phi)
		x := e.SemiMajor * cosP
		y := e.SemiMinor * sinP
		points = append(points, Point{
			X: e.Center.X + x*cosR - y*sinR,
			Y: e.Center.Y + x*sinR + y*cosR,
		})
	}
	return points
}

// axisFrame is the working frame in which the diameter lies on a horizontal
// line through its midpoint.
type axisFrame struct {
	center    Point
	axisAngle float64 // atan slope of the diameter
	rotated   [3]Point
	semiMajor float64
}

func newAxisFrame(diameter [2]Point, peripheral Point) axisFrame {
	center := Midpoint(diameter[0], diameter[1])
	axisAngle := AngleBetween(diameter[0], diameter[1])

	f := axisFrame{
		center:    center,
		axisAngle: axisAngle,
	}
	for i, p := range [3]Point{diameter[0], diameter[1], peripheral} {
		f.rotated[i] = Rotate(center, p, -axisAngle)
	}
	f.semiMajor = math.Abs(center.X - f.rotated[0].X)
	return f
}

// semiMinor solves (x-h)²/a² + (y-k)²/b² = 1 for b using the rotated
// peripheral point. Points outside (h-a, h+a) yield NaN or +Inf.
func (f axisFrame) semiMinor() float64 {
	x := f.rotated[2].X
	y := f.rotated[2].Y
	h := f.center.X
	k := f.center.Y
	a := f.semiMajor

	num := (y - k) * (y - k)
	denom := 1 - ((x-h)*(x-h))/(a*a)
	return math.Sqrt(num / denom)
}

// chordEnd returns the point at signed distance offset along the minor
// axis, mapped back to image space
func (f axisFrame) chordEnd(offset float64) Point {
	p := Point{X: f.center.X, Y: f.center.Y + offset}
	return Rotate(f.center, p, f.axisAngle)
}

// FitEllipse computes the ellipse whose major axis is the segment between
// the diameter endpoints and which passes through the peripheral point.
//
// Center and semi-axes are truncated towards zero. A peripheral point that
// no such ellipse can reach produces NaN (or +Inf) semi-minor axes.
func FitEllipse(diameter [2]Point, peripheral Point) EllipseParameters {
	f := newAxisFrame(diameter, peripheral)

	majorAxis := Distance(diameter[0], diameter[1])
	minorAxis := f.semiMinor() * 2

	return EllipseParameters{
		Center:     Point{X: math.Trunc(f.center.X), Y: math.Trunc(f.center.Y)},
		SemiMajor:  math.Trunc(majorAxis / 2),
		SemiMinor:  math.Trunc(minorAxis / 2),
		Rotation:   ScreenAngleFromFrame(-f.axisAngle),
		SweepStart: SweepStart,
		SweepEnd:   SweepEnd,
	}
}

// PerpendicularChord returns the two endpoints of the minor axis of the
// ellipse defined by FitEllipse: the segment through the center,
// perpendicular to the diameter, with half-length equal to the semi-minor
// axis. The first point is offset towards +y of the straightened frame.
func PerpendicularChord(diameter [2]Point, peripheral Point) [2]Point {
	f := newAxisFrame(diameter, peripheral)
	b := f.semiMinor()
	return [2]Point{f.chordEnd(b), f.chordEnd(-b)}
}

// SemiMinorAxis returns the untruncated semi-minor axis length of the
// ellipse defined by FitEllipse
func SemiMinorAxis(diameter [2]Point, peripheral Point) float64 {
	return newAxisFrame(diameter, peripheral).semiMinor()
}
