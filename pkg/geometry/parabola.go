package geometry

// Parabola holds the coefficients of a horizontal parabola
// x = A*y² + B*y + C, fitted in vertex form x = a(y-k)² + h.
type Parabola struct {
	A, B, C float64
	Vertex  Point
}

// Derivatives are dx/dy and d²x/dy² of a fitted parabola
type Derivatives struct {
	First  float64
	Second float64
}

// FitParabola fits x = a(y-k)² + h through vertex (h, k) and p1.
// When p1.Y equals vertex.Y the coefficient a is ±Inf (or NaN if the points
// coincide); the result is returned as is.
func FitParabola(vertex, p1 Point) Parabola {
	h, k := vertex.X, vertex.Y
	dy := p1.Y - k
	a := (p1.X - h) / (dy * dy)
	return Parabola{
		A:      a,
		B:      -2 * a * k,
		C:      a*k*k + h,
		Vertex: vertex,
	}
}

// X evaluates the parabola at ordinate y
func (p Parabola) X(y float64) float64 {
	dy := y - p.Vertex.Y
	return p.A*dy*dy + p.Vertex.X
}

// Finite reports whether all coefficients are finite
func (p Parabola) Finite() bool {
	return isFinite(p.A) && isFinite(p.B) && isFinite(p.C)
}

// Sample returns n+1 points of the parabola between ordinates from and to
func (p Parabola) Sample(from, to float64, n int) []Point {
	if n < 1 {
		n = 1
	}
	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		y := from + (to-from)*float64(i)/float64(n)
		points = append(points, Point{X: p.X(y), Y: y})
	}
	return points
}

// BezierControlPoint returns the point where the tangent of the parabola at
// p1 crosses the horizontal line y = y0. It is used as the control point
// when the arm from p1 is drawn as a Bezier curve.
func BezierControlPoint(a, y0 float64, p1 Point) Point {
	xp := 2 * a * (p1.Y - y0)
	x := xp*(y0-p1.Y) + p1.X
	return Point{X: x, Y: y0}
}

// ParabolaDerivatives returns the first and second derivative dx/dy of a
// parabola with coefficient a and vertex ordinate y0, evaluated at y1
func ParabolaDerivatives(a, y0, y1 float64) Derivatives {
	return Derivatives{
		First:  2 * a * (y1 - y0),
		Second: 2 * a,
	}
}
