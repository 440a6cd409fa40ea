package geometry

import (
	"fmt"
	"math"
)

// Point is a position in image-pixel space (y grows downwards)
type Point struct {
	X, Y float64
}

// NewPoint creates a new point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Sub returns the vector from other to p
func (p Point) Sub(other Point) Vector2 {
	return Vector2{
		X: p.X - other.X,
		Y: p.Y - other.Y,
	}
}

// Add translates the point by a vector
func (p Point) Add(v Vector2) Point {
	return Point{
		X: p.X + v.X,
		Y: p.Y + v.Y,
	}
}

// Finite reports whether both coordinates are finite numbers
func (p Point) Finite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Vector2 represents a 2D vector
type Vector2 struct {
	X, Y float64
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Dot returns the dot product of two vectors
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Midpoint returns the arithmetic mean of two points
func Midpoint(p1, p2 Point) Point {
	return Point{
		X: (p1.X + p2.X) / 2,
		Y: (p1.Y + p2.Y) / 2,
	}
}

// Distance returns the euclidean distance between two points
func Distance(p1, p2 Point) float64 {
	return p1.Sub(p2).Length()
}

// AngleBetween returns atan(dy/dx) of the segment p1->p2 in radians.
//
// The result lies in (-π/2, π/2), so the direction of the segment is lost.
// A vertical segment divides by zero; the result is then ±π/2 for a
// non-zero dy and NaN for coincident points.
func AngleBetween(p1, p2 Point) float64 {
	y := p2.Y - p1.Y
	x := p2.X - p1.X
	return math.Atan(y / x)
}

// Rotate rotates point about origin by angle radians, counter-clockwise in a
// y-up frame. In image space (y down) a positive angle therefore turns the
// point clockwise on screen.
func Rotate(origin, point Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx := point.X - origin.X
	dy := point.Y - origin.Y
	return Point{
		X: origin.X + cos*dx - sin*dy,
		Y: origin.Y + sin*dx + cos*dy,
	}
}

// Dot returns the dot product of two vectors
func Dot(v1, v2 Vector2) float64 {
	return v1.Dot(v2)
}

// Magnitude returns the length of a vector
func Magnitude(v Vector2) float64 {
	return v.Length()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
