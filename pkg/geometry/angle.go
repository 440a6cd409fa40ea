package geometry

import "math"

// ScreenAngle is an angle in radians measured clockwise in image space
// (x right, y down). This is the convention of canvas ellipse/arc
// primitives.
//
// The solvers straighten the major axis by rotating points with Rotate,
// which is counter-clockwise in a y-up frame. That frame rotation and the
// drawing angle of the ellipse have opposite signs; ScreenAngleFromFrame
// is the only place the sign is flipped.
type ScreenAngle float64

// ScreenAngleFromFrame converts the rotation that was applied to bring the
// major axis onto the x-axis into the drawing angle of that axis.
func ScreenAngleFromFrame(frameRotation float64) ScreenAngle {
	return ScreenAngle(-frameRotation)
}

// Radians returns the angle in radians
func (a ScreenAngle) Radians() float64 {
	return float64(a)
}

// Degrees returns the angle in degrees
func (a ScreenAngle) Degrees() float64 {
	return Degrees(float64(a))
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
