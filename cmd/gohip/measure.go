package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/export"
	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/spf13/cobra"
)

var (
	measureSteps      string
	measureID         string
	measureLaterality string
	measureCSV        string
)

var measureCmd = &cobra.Command{
	Use:   "measure <x,y>...",
	Short: "Run captured points through a protocol and print the measurements",
	Long: `Capture the given points in order, exactly as clicks in the application
would, and print the resulting measurements.

With the default hip protocol the points are: two teardrop points, the two
endpoints of the acetabular diameter, a cup perimeter point and a femoral
head perimeter point.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().StringVarP(&measureSteps, "steps", "s", "", "built-in protocol name or step configuration file")
	measureCmd.Flags().StringVar(&measureID, "id", "measurement", "record ID used for CSV output")
	measureCmd.Flags().StringVar(&measureLaterality, "laterality", "", "laterality of the record (left or right)")
	measureCmd.Flags().StringVarP(&measureCSV, "csv", "o", "", "write the record to this CSV file")
}

func runMeasure(cmd *cobra.Command, args []string) {
	cfg, err := protocol.Resolve(measureSteps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	points, err := parsePoints(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	laterality, err := export.ParseLaterality(measureLaterality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := protocol.ClearAll(protocol.New(cfg))
	for _, pt := range points {
		p = protocol.ApplyClick(p, pt)
	}
	result := analysis.Measure(p)

	fmt.Printf("Protocol: %s (%s)\n", cfg.Name, p.State())
	printSteps(p)
	fmt.Println()
	printResult(result)

	if len(points) > capturablePoints(cfg) {
		fmt.Printf("Warning: %d point(s) ignored, the protocol was already complete\n",
			len(points)-capturablePoints(cfg))
	}

	if measureCSV == "" {
		return
	}
	if result.Hip == nil {
		fmt.Fprintln(os.Stderr, "Error: the protocol did not produce hip angles, nothing to export")
		os.Exit(1)
	}
	record := export.NewRecord(measureID, *result.Hip, laterality, export.StepCoordinates(p))
	if err := export.WriteFile(measureCSV, []export.Record{record}, export.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %s\n", measureCSV)
}

func capturablePoints(cfg *protocol.Config) int {
	n := 0
	for _, s := range cfg.Steps() {
		n += s.Kind.Arity()
	}
	return n
}

func printSteps(p protocol.Protocol) {
	for _, s := range p.Steps() {
		status := "incomplete"
		if s.Complete() {
			status = "complete"
		}
		fmt.Printf("  Step %d: %s [%s, %s]\n", s.ID, s.Label, s.Kind, status)
		for _, pt := range s.Points() {
			fmt.Printf("    %s\n", analysis.FormatPoint(pt))
		}
	}
}

func printResult(r analysis.Result) {
	if r.Hip == nil && r.Parabola == nil && len(r.Ellipses) == 0 {
		fmt.Println("No measurements available yet")
		return
	}

	for _, s := range sortedEllipseSteps(r) {
		e := r.Ellipses[s]
		fmt.Printf("Ellipse (step %d):\n", s)
		fmt.Printf("  Center: %s\n", analysis.FormatPoint(e.Center))
		fmt.Printf("  Semi-axes: %s / %s\n",
			analysis.FormatMeasurement(e.SemiMajor, "px"),
			analysis.FormatMeasurement(e.SemiMinor, "px"))
		fmt.Printf("  Rotation: %s\n", analysis.FormatMeasurement(e.Rotation.Degrees(), "°"))
	}

	if r.Hip != nil {
		fmt.Println("Hip Angles:")
		fmt.Printf("  Abduction Angle: %s\n", analysis.FormatMeasurement(r.Hip.Gamma, "°"))
		fmt.Printf("  S/TL Ratio: %s\n", analysis.FormatMeasurement(r.Hip.Ratio, ""))
		fmt.Printf("  Anteversion (Widmer): %s\n", analysis.FormatMeasurement(r.Hip.AnteversionWidmer, "°"))
		fmt.Printf("  Anteversion (Liaw): %s\n", analysis.FormatMeasurement(r.Hip.Beta, "°"))
		if !r.Hip.Finite() {
			fmt.Println("Warning: degenerate geometry, some angles are not defined")
		}
	}

	if r.Parabola != nil {
		printParabola(*r.Parabola)
	}
}

func sortedEllipseSteps(r analysis.Result) []protocol.StepID {
	ids := make([]protocol.StepID, 0, len(r.Ellipses))
	for id := range r.Ellipses {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
