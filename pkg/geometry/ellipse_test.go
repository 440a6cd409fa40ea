package geometry

import (
	"math"
	"testing"
)

func TestFitEllipseHorizontal(t *testing.T) {
	params := FitEllipse([2]Point{NewPoint(0, 0), NewPoint(100, 0)}, NewPoint(50, 30))

	expected := EllipseParameters{
		Center:     NewPoint(50, 0),
		SemiMajor:  50,
		SemiMinor:  30,
		Rotation:   0,
		SweepStart: 0,
		SweepEnd:   360,
	}
	if params != expected {
		t.Errorf("FitEllipse failed: expected %+v, got %+v", expected, params)
	}

	tuple := params.Tuple()
	expectedTuple := [7]float64{50, 0, 50, 30, 0, 0, 360}
	if tuple != expectedTuple {
		t.Errorf("Tuple failed: expected %v, got %v", expectedTuple, tuple)
	}
}

func TestFitEllipseTruncates(t *testing.T) {
	// 101 px diameter -> 50.5 semi-major, 19.7 px semi-minor
	params := FitEllipse([2]Point{NewPoint(1, 1), NewPoint(102, 1)}, NewPoint(51.5, 20.7))

	if params.Center != NewPoint(51, 1) {
		t.Errorf("Center truncation failed: expected (51, 1), got %v", params.Center)
	}
	if params.SemiMajor != 50 {
		t.Errorf("SemiMajor truncation failed: expected 50, got %v", params.SemiMajor)
	}
	if params.SemiMinor != 19 {
		t.Errorf("SemiMinor truncation failed: expected 19 (not rounded to 20), got %v", params.SemiMinor)
	}
}

func TestFitEllipseTruncatesTowardsZero(t *testing.T) {
	params := FitEllipse([2]Point{NewPoint(-10, -3), NewPoint(-5, -3)}, NewPoint(-7.5, -1))

	if params.Center != NewPoint(-7, -3) {
		t.Errorf("Center truncation failed: expected (-7, -3), got %v", params.Center)
	}
	if params.SemiMinor != 2 {
		t.Errorf("SemiMinor failed: expected 2, got %v", params.SemiMinor)
	}
}

func TestFitEllipseRecoversRotatedEllipse(t *testing.T) {
	center := NewPoint(200, 150)
	a, b := 80.0, 40.0

	for _, theta := range []float64{0.3, -0.7, 1.2} {
		sinT, cosT := math.Sincos(theta)
		major := NewVector2(a*cosT, a*sinT)
		diameter := [2]Point{
			NewPoint(center.X-major.X, center.Y-major.Y),
			NewPoint(center.X+major.X, center.Y+major.Y),
		}

		for _, phi := range []float64{0.4, 1.0, 2.5, 4.0} {
			sinP, cosP := math.Sincos(phi)
			onEllipse := NewPoint(
				center.X+a*cosP*cosT-b*sinP*sinT,
				center.Y+a*cosP*sinT+b*sinP*cosT,
			)

			params := FitEllipse(diameter, onEllipse)

			if math.Abs(params.Center.X-center.X) > 1 || math.Abs(params.Center.Y-center.Y) > 1 {
				t.Errorf("Center failed (θ=%v, φ=%v): expected %v, got %v", theta, phi, center, params.Center)
			}
			if math.Abs(params.SemiMajor-a) > 1 {
				t.Errorf("SemiMajor failed (θ=%v, φ=%v): expected %v, got %v", theta, phi, a, params.SemiMajor)
			}
			if math.Abs(params.SemiMinor-b) > 1 {
				t.Errorf("SemiMinor failed (θ=%v, φ=%v): expected %v, got %v", theta, phi, b, params.SemiMinor)
			}
			if math.Abs(params.Rotation.Radians()-theta) > 1e-9 {
				t.Errorf("Rotation failed (θ=%v, φ=%v): expected %v, got %v", theta, phi, theta, params.Rotation)
			}
		}
	}
}

func TestFitEllipseUnreachablePeripheralPoint(t *testing.T) {
	diameter := [2]Point{NewPoint(0, 0), NewPoint(100, 0)}

	outside := FitEllipse(diameter, NewPoint(150, 10))
	if !math.IsNaN(outside.SemiMinor) {
		t.Errorf("expected NaN semi-minor axis, got %v", outside.SemiMinor)
	}
	if outside.Finite() {
		t.Error("expected ellipse outside the span to be reported as non-finite")
	}

	onEdge := FitEllipse(diameter, NewPoint(100, 10))
	if !math.IsInf(onEdge.SemiMinor, 1) {
		t.Errorf("expected +Inf semi-minor axis, got %v", onEdge.SemiMinor)
	}
}

func TestFitEllipseVerticalDiameter(t *testing.T) {
	params := FitEllipse([2]Point{NewPoint(50, 0), NewPoint(50, 100)}, NewPoint(70, 50))

	if math.Abs(params.Rotation.Radians()-math.Pi/2) > 1e-10 {
		t.Errorf("Rotation failed: expected %v, got %v", math.Pi/2, params.Rotation)
	}
	if params.SemiMajor != 50 {
		t.Errorf("SemiMajor failed: expected 50, got %v", params.SemiMajor)
	}
	if math.Abs(params.SemiMinor-20) > 1 {
		t.Errorf("SemiMinor failed: expected ~20, got %v", params.SemiMinor)
	}
}

func TestPerpendicularChord(t *testing.T) {
	chord := PerpendicularChord([2]Point{NewPoint(0, 0), NewPoint(100, 0)}, NewPoint(50, 30))

	if chord[0] != NewPoint(50, 30) || chord[1] != NewPoint(50, -30) {
		t.Errorf("PerpendicularChord failed: expected [(50, 30) (50, -30)], got %v", chord)
	}
}

func TestPerpendicularChordRotated(t *testing.T) {
	diameter := [2]Point{NewPoint(10, 20), NewPoint(130, 110)}
	peripheral := NewPoint(40, 90)

	chord := PerpendicularChord(diameter, peripheral)
	axis := diameter[1].Sub(diameter[0])
	chordVec := chord[1].Sub(chord[0])

	if math.Abs(axis.Dot(chordVec)) > 1e-6 {
		t.Errorf("chord not perpendicular: dot = %v", axis.Dot(chordVec))
	}

	mid := Midpoint(chord[0], chord[1])
	center := Midpoint(diameter[0], diameter[1])
	if Distance(mid, center) > 1e-9 {
		t.Errorf("chord not centered: expected %v, got %v", center, mid)
	}

	semiMinor := SemiMinorAxis(diameter, peripheral)
	if math.Abs(chordVec.Length()/2-semiMinor) > 1e-9 {
		t.Errorf("chord half-length failed: expected %v, got %v", semiMinor, chordVec.Length()/2)
	}
}

func TestEllipseOutline(t *testing.T) {
	params := EllipseParameters{
		Center:    NewPoint(10, 10),
		SemiMajor: 5,
		SemiMinor: 2,
		Rotation:  ScreenAngle(math.Pi / 2),
	}

	outline := params.Outline(8)
	if len(outline) != 9 {
		t.Fatalf("Outline failed: expected 9 points, got %d", len(outline))
	}

	// Major axis points straight down in image space
	if math.Abs(outline[0].X-10) > 1e-10 || math.Abs(outline[0].Y-15) > 1e-10 {
		t.Errorf("Outline start failed: expected (10, 15), got %v", outline[0])
	}
	if Distance(outline[0], outline[8]) > 1e-10 {
		t.Errorf("Outline not closed: %v vs %v", outline[0], outline[8])
	}
}
