package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/protocol"
)

// ErrNoRecords is returned when there is nothing to export
var ErrNoRecords = errors.New("no records to export")

// Column headers of the measurement export
const (
	HeaderID                = "ID"
	HeaderAbductionAngle    = "Abduction Angle"
	HeaderRatio             = "S/TL Ratio"
	HeaderAnteversionWidmer = "Anteversion Angle (Widmer)"
	HeaderAnteversionLiaw   = "Anteversion Angle (Liaw)"
	HeaderLaterality        = "Laterality"
)

// Laterality is the side of the hip an image shows
type Laterality string

const (
	LateralityNone  Laterality = ""
	LateralityLeft  Laterality = "Left"
	LateralityRight Laterality = "Right"
)

// ParseLaterality accepts left/right in any case and the empty string
func ParseLaterality(s string) (Laterality, error) {
	switch strings.ToLower(s) {
	case "":
		return LateralityNone, nil
	case "left":
		return LateralityLeft, nil
	case "right":
		return LateralityRight, nil
	}
	return LateralityNone, fmt.Errorf("unknown laterality %q", s)
}

// Coordinates are the captured points of one step, exported under its label
type Coordinates struct {
	Label  string
	Points []geometry.Point
}

// Record is one exported measurement row
type Record struct {
	ID                string
	AbductionAngle    float64
	Ratio             float64
	AnteversionWidmer float64
	AnteversionLiaw   float64
	Laterality        Laterality
	Coordinates       []Coordinates
}

// NewRecord builds a record from hip angles. The Widmer anteversion is
// derived from the ratio.
func NewRecord(id string, hip analysis.HipAngles, laterality Laterality, coords []Coordinates) Record {
	return Record{
		ID:                id,
		AbductionAngle:    hip.Gamma,
		Ratio:             hip.Ratio,
		AnteversionWidmer: analysis.AnteversionWidmer(hip.Ratio),
		AnteversionLiaw:   hip.Beta,
		Laterality:        laterality,
		Coordinates:       coords,
	}
}

// Finite reports whether every angle of the record is defined
func (r Record) Finite() bool {
	for _, v := range []float64{r.AbductionAngle, r.Ratio, r.AnteversionWidmer, r.AnteversionLiaw} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// StepCoordinates collects the captured points of every labelled step
func StepCoordinates(p protocol.Protocol) []Coordinates {
	var coords []Coordinates
	for _, s := range p.Steps() {
		if s.Label == "" {
			continue
		}
		coords = append(coords, Coordinates{Label: s.Label, Points: s.Points()})
	}
	return coords
}

// Options controls the delimited output
type Options struct {
	Delimiter   rune // defaults to ','
	Coordinates bool // append one column per coordinate group
}

// Write writes a header row followed by one row per record. The header is
// taken from the first record.
func Write(w io.Writer, records []Record, opts Options) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}

	if err := cw.Write(header(records[0], opts)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(r, opts)); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the records to path
func WriteFile(path string, records []Record, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(f, records, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func header(r Record, opts Options) []string {
	cols := []string{
		HeaderID,
		HeaderAbductionAngle,
		HeaderRatio,
		HeaderAnteversionWidmer,
		HeaderAnteversionLiaw,
		HeaderLaterality,
	}
	if opts.Coordinates {
		for _, c := range r.Coordinates {
			cols = append(cols, c.Label)
		}
	}
	return cols
}

func row(r Record, opts Options) []string {
	cols := []string{
		r.ID,
		FormatNumber(r.AbductionAngle),
		FormatNumber(r.Ratio),
		FormatNumber(r.AnteversionWidmer),
		FormatNumber(r.AnteversionLiaw),
		string(r.Laterality),
	}
	if opts.Coordinates {
		for _, c := range r.Coordinates {
			cols = append(cols, FormatPoints(c.Points))
		}
	}
	return cols
}

// FormatNumber rounds to two decimals
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPoints formats points as a flat bracketed list: [x1,y1,x2,y2]
func FormatPoints(points []geometry.Point) string {
	parts := make([]string, 0, len(points)*2)
	for _, p := range points {
		parts = append(parts, FormatNumber(p.X), FormatNumber(p.Y))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Scope selects which records an export contains
type Scope int

const (
	// ScopeCurrent exports the record of the current image
	ScopeCurrent Scope = iota
	// ScopeAll exports every record
	ScopeAll
	// ScopeCoordinates exports every record with its coordinates
	ScopeCoordinates
)

// FileName returns the export file name (without extension) for records:
// the first ID, first-last for full exports and a "+Coors" suffix when
// coordinates are included
func FileName(records []Record, scope Scope) string {
	if len(records) == 0 {
		switch scope {
		case ScopeCurrent:
			return "currData"
		case ScopeAll:
			return "allData"
		}
		return "allData+Coors"
	}

	first := records[0].ID
	if scope == ScopeCurrent {
		return first
	}
	name := first + "-" + records[len(records)-1].ID
	if scope == ScopeCoordinates {
		name += "+Coors"
	}
	return name
}
