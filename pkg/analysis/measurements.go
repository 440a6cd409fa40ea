package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/protocol"
)

// LiawOffsetDegrees is the empirical calibration offset of the Liaw
// anteversion method
const LiawOffsetDegrees = 5.46

// Widmer calibration: anteversion = WidmerSlope*ratio + WidmerIntercept
const (
	WidmerSlope     = 48.05
	WidmerIntercept = -0.3
)

// HipAngles contains the hip measurements derived from a complete hip protocol
type HipAngles struct {
	Gamma             float64 // abduction angle in degrees
	Beta              float64 // anteversion angle (Liaw) in degrees
	Ratio             float64 // short/long axis ratio
	AnteversionWidmer float64 // anteversion angle (Widmer) in degrees
}

// Finite reports whether every angle could be computed
func (h HipAngles) Finite() bool {
	for _, v := range []float64{h.Gamma, h.Beta, h.Ratio, h.AnteversionWidmer} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ParabolaArm is one captured point on a parabola arm with its rendering
// control point and derivatives
type ParabolaArm struct {
	Step        protocol.StepID
	Point       geometry.Point
	Control     geometry.Point
	Derivatives geometry.Derivatives
}

// ParabolaResult is the outcome of the vertex-parabola workflow
type ParabolaResult struct {
	Parabola geometry.Parabola
	Arms     []ParabolaArm
}

// Result contains every measurement that can be derived from a protocol
// snapshot. Parts whose steps are not complete yet are nil or empty.
type Result struct {
	Ellipses  map[protocol.StepID]geometry.EllipseParameters
	HeadChord *[2]geometry.Point
	Hip       *HipAngles
	Parabola  *ParabolaResult
}

// Measure recomputes all measurements from the captured points of p
func Measure(p protocol.Protocol) Result {
	result := Result{
		Ellipses: make(map[protocol.StepID]geometry.EllipseParameters),
	}

	for _, s := range p.Steps() {
		if s.Kind != protocol.KindEllipse {
			continue
		}
		group, ok := p.Group(s.ID)
		if !ok {
			continue
		}
		diameter := [2]geometry.Point{group[0], group[1]}
		result.Ellipses[s.ID] = geometry.FitEllipse(diameter, group[2])

		if s.Role == protocol.RoleHeadPerimeter {
			chord := geometry.PerpendicularChord(diameter, group[2])
			result.HeadChord = &chord
		}
	}

	result.Hip = measureHip(p, result.HeadChord)
	result.Parabola = measureParabola(p)
	return result
}

func measureHip(p protocol.Protocol, headChord *[2]geometry.Point) *HipAngles {
	teardrop, ok1 := completeStep(p, protocol.RoleTeardrop)
	diameter, ok2 := completeStep(p, protocol.RoleDiameter)
	cup, ok3 := completeStep(p, protocol.RoleCupPerimeter)
	if !ok1 || !ok2 || !ok3 || headChord == nil {
		return nil
	}

	t := teardrop.Points()
	d := diameter.Points()
	gamma := Gamma([4]geometry.Point{t[0], t[1], d[0], d[1]})
	beta, ratio := Beta([2]geometry.Point{d[0], d[1]}, cup.Points()[0], headChord[1], gamma)

	return &HipAngles{
		Gamma:             gamma,
		Beta:              beta,
		Ratio:             ratio,
		AnteversionWidmer: AnteversionWidmer(ratio),
	}
}

func measureParabola(p protocol.Protocol) *ParabolaResult {
	vertexStep, ok := completeStep(p, protocol.RoleVertex)
	if !ok {
		return nil
	}
	vertex := vertexStep.Points()[0]

	var result *ParabolaResult
	for _, s := range p.StepsByRole(protocol.RoleParabolaArm) {
		if !s.Complete() {
			continue
		}
		pt := s.Points()[0]
		if result == nil {
			result = &ParabolaResult{Parabola: geometry.FitParabola(vertex, pt)}
		}
		a := result.Parabola.A
		result.Arms = append(result.Arms, ParabolaArm{
			Step:        s.ID,
			Point:       pt,
			Control:     geometry.BezierControlPoint(a, vertex.Y, pt),
			Derivatives: geometry.ParabolaDerivatives(a, vertex.Y, pt.Y),
		})
	}
	return result
}

func completeStep(p protocol.Protocol, role protocol.Role) (protocol.Step, bool) {
	s, ok := p.StepByRole(role)
	if !ok || !s.Complete() {
		return protocol.Step{}, false
	}
	return s, true
}

// Gamma returns the angle in degrees between the vectors points[0]->points[1]
// and points[2]->points[3]. A zero-length vector yields NaN.
func Gamma(points [4]geometry.Point) float64 {
	v1 := points[1].Sub(points[0])
	v2 := points[3].Sub(points[2])

	cos := geometry.Dot(v1, v2) / (geometry.Magnitude(v1) * geometry.Magnitude(v2))
	// rounding can push parallel vectors just outside acos' domain
	cos = math.Max(-1, math.Min(1, cos))
	return geometry.Degrees(math.Acos(cos))
}

// Beta computes the Liaw anteversion angle in degrees and the short/long
// axis ratio. The ellipse is defined by the diameter and the peripheral
// point, the ratio compares its semi-minor axis with the distance between
// the chord endpoint and the reference point. gamma is in degrees.
//
// A degenerate ellipse makes both values NaN. beta alone is NaN when the
// ratio leaves the domain of asin or gamma is a multiple of 180°.
func Beta(diameter [2]geometry.Point, peripheral, reference geometry.Point, gamma float64) (beta, ratio float64) {
	b := geometry.SemiMinorAxis(diameter, peripheral)
	pt1 := geometry.PerpendicularChord(diameter, peripheral)[0]

	t1 := geometry.Distance(pt1, reference)
	ratio = b / t1

	sinGamma := sinDegrees(gamma)
	csc := 1 / sinGamma
	isin := math.Asin(ratio / (2 - ratio))
	alpha := math.Atan(math.Tan(isin * csc))
	tan1 := math.Tan(alpha + geometry.Radians(LiawOffsetDegrees))
	beta = geometry.Degrees(math.Atan(tan1 * sinGamma))
	return beta, ratio
}

// AnteversionWidmer returns the Widmer anteversion angle for an axis ratio
func AnteversionWidmer(ratio float64) float64 {
	return WidmerSlope*ratio + WidmerIntercept
}

// sinDegrees is exact at multiples of 180° so that csc is infinite there
func sinDegrees(deg float64) float64 {
	if math.Mod(deg, 180) == 0 {
		return 0
	}
	return math.Sin(geometry.Radians(deg))
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "n/a"
	}
	if unit == "" {
		return fmt.Sprintf("%.2f", value)
	}
	return fmt.Sprintf("%.2f %s", value, unit)
}

// FormatPoint formats an image-space point
func FormatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
