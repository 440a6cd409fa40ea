package overlay

import (
	"math"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/protocol"
)

// ParabolaSegments is the number of segments a parabola curve is sampled with
const ParabolaSegments = 64

// Marker is a dot drawn at a captured point
type Marker struct {
	Step   protocol.StepID
	Center geometry.Point
}

// Segment is a straight line
type Segment struct {
	Step     protocol.StepID
	From, To geometry.Point
}

// Path is a polyline, closed for ellipse outlines
type Path struct {
	Step   protocol.StepID
	Points []geometry.Point
	Closed bool
}

// Scene is everything drawn on top of an image, in image coordinates
type Scene struct {
	Width, Height float64
	Markers       []Marker
	Segments      []Segment
	Paths         []Path
}

// Empty reports whether the scene has nothing to draw
func (s Scene) Empty() bool {
	return len(s.Markers) == 0 && len(s.Segments) == 0 && len(s.Paths) == 0
}

// Build turns the steps up to the active one into drawable primitives for an
// image of the given size. Non-finite geometry is skipped.
func Build(p protocol.Protocol, result analysis.Result, width, height float64) Scene {
	scene := Scene{Width: width, Height: height}

	last := int(p.Active())
	if last > p.Len() {
		last = p.Len()
	}

	for id := protocol.StepID(1); int(id) <= last; id++ {
		s, _ := p.Step(id)
		pts := s.Points()

		switch s.Kind {
		case protocol.KindLine:
			switch len(pts) {
			case 1:
				scene.addMarker(id, pts[0])
			case 2:
				from, to := ExtendLine(pts[0], pts[1], width, height)
				scene.addSegment(id, from, to)
			}
		case protocol.KindPoint, protocol.KindParabolaPoint:
			if len(pts) == 1 {
				scene.addMarker(id, pts[0])
			}
		case protocol.KindEllipse:
			e, ok := result.Ellipses[id]
			if !ok || !e.Finite() {
				continue
			}
			scene.addPath(id, e.Outline(geometry.DefaultOutlineSegments), true)
			if s.Role == protocol.RoleHeadPerimeter && result.HeadChord != nil {
				scene.addSegment(id, result.HeadChord[0], result.HeadChord[1])
			}
		}
	}

	if result.Parabola != nil && result.Parabola.Parabola.Finite() {
		scene.addParabola(result.Parabola)
	}
	return scene
}

// ExtendLine extends the line through a and b across the full image width.
// Vertical lines span the image height instead.
func ExtendLine(a, b geometry.Point, width, height float64) (geometry.Point, geometry.Point) {
	if a.X == b.X {
		return geometry.Point{X: a.X, Y: 0}, geometry.Point{X: a.X, Y: height}
	}
	m := (b.Y - a.Y) / (b.X - a.X)
	return geometry.Point{X: 0, Y: m*(0-a.X) + a.Y},
		geometry.Point{X: width, Y: m*(width-a.X) + a.Y}
}

func (s *Scene) addMarker(id protocol.StepID, p geometry.Point) {
	if !p.Finite() {
		return
	}
	s.Markers = append(s.Markers, Marker{Step: id, Center: p})
}

func (s *Scene) addSegment(id protocol.StepID, from, to geometry.Point) {
	if !from.Finite() || !to.Finite() {
		return
	}
	s.Segments = append(s.Segments, Segment{Step: id, From: from, To: to})
}

func (s *Scene) addPath(id protocol.StepID, pts []geometry.Point, closed bool) {
	for _, p := range pts {
		if !p.Finite() {
			return
		}
	}
	s.Paths = append(s.Paths, Path{Step: id, Points: pts, Closed: closed})
}

// addParabola draws the parabola between the outermost captured ordinates
func (s *Scene) addParabola(r *analysis.ParabolaResult) {
	vertex := r.Parabola.Vertex
	from, to := vertex.Y, vertex.Y
	for _, arm := range r.Arms {
		from = math.Min(from, arm.Point.Y)
		to = math.Max(to, arm.Point.Y)
	}
	if from == to {
		return
	}
	step := protocol.IdleStep
	if len(r.Arms) > 0 {
		step = r.Arms[0].Step
	}
	s.addPath(step, r.Parabola.Sample(from, to, ParabolaSegments), false)
}
