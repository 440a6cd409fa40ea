package geometry

import (
	"math"
	"testing"
)

func TestMidpoint(t *testing.T) {
	result := Midpoint(NewPoint(1, 2), NewPoint(5, 10))

	expected := NewPoint(3, 6)
	if result != expected {
		t.Errorf("Midpoint failed: expected %v, got %v", expected, result)
	}
}

func TestDistance(t *testing.T) {
	distance := Distance(NewPoint(0, 0), NewPoint(3, 4))

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestAngleBetween(t *testing.T) {
	angle := AngleBetween(NewPoint(0, 0), NewPoint(10, 10))

	expected := math.Pi / 4
	if math.Abs(angle-expected) > 1e-10 {
		t.Errorf("AngleBetween failed: expected %v, got %v", expected, angle)
	}

	// Direction is not preserved
	reversed := AngleBetween(NewPoint(10, 10), NewPoint(0, 0))
	if math.Abs(reversed-expected) > 1e-10 {
		t.Errorf("AngleBetween reversed failed: expected %v, got %v", expected, reversed)
	}
}

func TestAngleBetweenVertical(t *testing.T) {
	angle := AngleBetween(NewPoint(5, 0), NewPoint(5, 10))
	if math.Abs(angle-math.Pi/2) > 1e-10 {
		t.Errorf("AngleBetween vertical failed: expected %v, got %v", math.Pi/2, angle)
	}

	same := AngleBetween(NewPoint(5, 5), NewPoint(5, 5))
	if !math.IsNaN(same) {
		t.Errorf("AngleBetween coincident failed: expected NaN, got %v", same)
	}
}

func TestRotate(t *testing.T) {
	result := Rotate(NewPoint(0, 0), NewPoint(1, 0), math.Pi/2)

	if math.Abs(result.X) > 1e-10 || math.Abs(result.Y-1) > 1e-10 {
		t.Errorf("Rotate failed: expected (0, 1), got %v", result)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	origins := []Point{NewPoint(0, 0), NewPoint(50, -20), NewPoint(312.5, 87.25)}
	points := []Point{NewPoint(1, 0), NewPoint(-40, 13), NewPoint(640, 480)}
	angles := []float64{0, 0.3, -1.2, math.Pi, 5.5}

	for _, origin := range origins {
		for _, p := range points {
			for _, angle := range angles {
				back := Rotate(origin, Rotate(origin, p, angle), -angle)
				if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
					t.Errorf("Rotate round trip failed for %v about %v by %v: got %v", p, origin, angle, back)
				}
			}
		}
	}
}

func TestVector2Dot(t *testing.T) {
	result := Dot(NewVector2(1, 2), NewVector2(3, 4))

	expected := 11.0
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Magnitude(t *testing.T) {
	v := NewPoint(4, 6).Sub(NewPoint(1, 2))
	length := Magnitude(v)

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Magnitude failed: expected %v, got %v", expected, length)
	}
}

func TestScreenAngleFromFrame(t *testing.T) {
	angle := ScreenAngleFromFrame(-0.25)
	if angle.Radians() != 0.25 {
		t.Errorf("ScreenAngleFromFrame failed: expected 0.25, got %v", angle.Radians())
	}

	if math.Abs(ScreenAngle(math.Pi).Degrees()-180) > 1e-10 {
		t.Errorf("Degrees failed: expected 180, got %v", ScreenAngle(math.Pi).Degrees())
	}
}
