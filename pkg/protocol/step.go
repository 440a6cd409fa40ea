package protocol

import (
	"fmt"
	"slices"

	"github.com/philipparndt/gohip/pkg/geometry"
)

// StepID is the 1-based position of a step in the capture protocol.
// IdleStep (0) is the "no image loaded" sentinel.
type StepID int

// IdleStep is the cursor position before an image is loaded
const IdleStep StepID = 0

// Kind governs how many points a step takes and which solver consumes it
type Kind int

const (
	// KindLine takes two points
	KindLine Kind = iota + 1
	// KindEllipse takes one peripheral point; its parent line is the diameter
	KindEllipse
	// KindPoint takes one free-standing point (a parabola vertex)
	KindPoint
	// KindParabolaPoint takes one point on a parabola whose vertex is the parent step
	KindParabolaPoint
)

var kindNames = map[Kind]string{
	KindLine:          "line",
	KindEllipse:       "ellipse",
	KindPoint:         "point",
	KindParabolaPoint: "parabola-point",
}

// ParseKind parses the textual kind used in step configuration files
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Arity returns the number of points a step of this kind captures
func (k Kind) Arity() int {
	if k == KindLine {
		return 2
	}
	return 1
}

// Role names what a step's points mean to the measurement engine
type Role string

const (
	RoleNone          Role = ""
	RoleTeardrop      Role = "teardrop"
	RoleDiameter      Role = "diameter"
	RoleCupPerimeter  Role = "cup-perimeter"
	RoleHeadPerimeter Role = "head-perimeter"
	RoleVertex        Role = "vertex"
	RoleParabolaArm   Role = "parabola-arm"
)

// Step is one entry of the capture protocol together with the points
// captured for it so far
type Step struct {
	ID     StepID
	Kind   Kind
	Parent StepID // IdleStep when the step has no parent
	Role   Role
	Label  string
	Text   string

	points []geometry.Point
}

// Points returns a copy of the captured points
func (s Step) Points() []geometry.Point {
	return slices.Clone(s.points)
}

// Len returns the number of captured points
func (s Step) Len() int {
	return len(s.points)
}

// Complete reports whether the step holds as many points as its kind requires
func (s Step) Complete() bool {
	return len(s.points) == s.Kind.Arity()
}

// HasParent reports whether the step refers to a parent step
func (s Step) HasParent() bool {
	return s.Parent != IdleStep
}

// withPoints returns a copy of the step holding pts. An empty slice is
// normalised to nil so that cleared steps compare equal to fresh ones.
func (s Step) withPoints(pts []geometry.Point) Step {
	if len(pts) == 0 {
		s.points = nil
	} else {
		s.points = pts
	}
	return s
}

// appendPoint returns a copy of the step with p appended. The backing array
// of the receiver is never written to.
func (s Step) appendPoint(p geometry.Point) Step {
	pts := make([]geometry.Point, len(s.points), len(s.points)+1)
	copy(pts, s.points)
	return s.withPoints(append(pts, p))
}

// dropLast returns a copy of the step without its last point
func (s Step) dropLast() Step {
	if len(s.points) == 0 {
		return s
	}
	return s.withPoints(slices.Clone(s.points[:len(s.points)-1]))
}
