package geometry

import (
	"math"
	"testing"
)

func TestFitParabola(t *testing.T) {
	vertex := NewPoint(10, 20)
	p1 := NewPoint(30, 30)

	parabola := FitParabola(vertex, p1)

	if math.Abs(parabola.A-0.2) > 1e-12 {
		t.Errorf("A failed: expected 0.2, got %v", parabola.A)
	}
	if math.Abs(parabola.B+8) > 1e-12 {
		t.Errorf("B failed: expected -8, got %v", parabola.B)
	}
	if math.Abs(parabola.C-90) > 1e-12 {
		t.Errorf("C failed: expected 90, got %v", parabola.C)
	}

	// Standard form and vertex form agree and pass through both points
	for _, y := range []float64{0, 20, 30, 47.5} {
		standard := parabola.A*y*y + parabola.B*y + parabola.C
		if math.Abs(standard-parabola.X(y)) > 1e-9 {
			t.Errorf("forms disagree at y=%v: %v vs %v", y, standard, parabola.X(y))
		}
	}
	if math.Abs(parabola.X(p1.Y)-p1.X) > 1e-12 {
		t.Errorf("parabola misses p1: expected %v, got %v", p1.X, parabola.X(p1.Y))
	}
	if math.Abs(parabola.X(vertex.Y)-vertex.X) > 1e-12 {
		t.Errorf("parabola misses vertex: expected %v, got %v", vertex.X, parabola.X(vertex.Y))
	}
}

func TestFitParabolaDegenerate(t *testing.T) {
	parabola := FitParabola(NewPoint(10, 20), NewPoint(30, 20))
	if !math.IsInf(parabola.A, 1) {
		t.Errorf("expected +Inf coefficient for p1.y == vertex.y, got %v", parabola.A)
	}
	if parabola.Finite() {
		t.Error("expected degenerate parabola to be reported as non-finite")
	}

	coincident := FitParabola(NewPoint(10, 20), NewPoint(10, 20))
	if !math.IsNaN(coincident.A) {
		t.Errorf("expected NaN coefficient for coincident points, got %v", coincident.A)
	}
}

func TestBezierControlPoint(t *testing.T) {
	control := BezierControlPoint(0.2, 20, NewPoint(30, 30))

	if math.Abs(control.X+10) > 1e-12 || control.Y != 20 {
		t.Errorf("BezierControlPoint failed: expected (-10, 20), got %v", control)
	}
}

func TestParabolaDerivatives(t *testing.T) {
	d := ParabolaDerivatives(0.2, 20, 30)

	if math.Abs(d.First-4) > 1e-12 {
		t.Errorf("First derivative failed: expected 4, got %v", d.First)
	}
	if math.Abs(d.Second-0.4) > 1e-12 {
		t.Errorf("Second derivative failed: expected 0.4, got %v", d.Second)
	}
}

func TestParabolaSample(t *testing.T) {
	parabola := FitParabola(NewPoint(0, 0), NewPoint(4, 2))
	points := parabola.Sample(0, 2, 4)

	if len(points) != 5 {
		t.Fatalf("Sample failed: expected 5 points, got %d", len(points))
	}
	if points[0] != NewPoint(0, 0) {
		t.Errorf("Sample start failed: expected (0, 0), got %v", points[0])
	}
	if math.Abs(points[4].X-4) > 1e-12 || points[4].Y != 2 {
		t.Errorf("Sample end failed: expected (4, 2), got %v", points[4])
	}
}
