package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/spf13/cobra"
)

var parabolaCmd = &cobra.Command{
	Use:   "parabola <vertex x,y> <arm x,y> [arm x,y]",
	Short: "Fit a vertex-form parabola and report its derivatives",
	Long: `Fit x = a(y-k)² + h through the vertex (h, k) and the first arm point.
For every arm point the Bezier control point of the arc from the vertex and
the first and second derivatives are printed.`,
	Args: cobra.RangeArgs(2, 3),
	Run:  runParabola,
}

func init() {
	rootCmd.AddCommand(parabolaCmd)
}

func runParabola(cmd *cobra.Command, args []string) {
	points, err := parsePoints(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vertex := points[0]
	par := geometry.FitParabola(vertex, points[1])
	result := analysis.ParabolaResult{Parabola: par}
	for _, pt := range points[1:] {
		result.Arms = append(result.Arms, analysis.ParabolaArm{
			Point:       pt,
			Control:     geometry.BezierControlPoint(par.A, vertex.Y, pt),
			Derivatives: geometry.ParabolaDerivatives(par.A, vertex.Y, pt.Y),
		})
	}

	fmt.Printf("Vertex: %s\n", analysis.FormatPoint(vertex))
	printParabola(result)

	if !par.Finite() {
		fmt.Println("Warning: the arm point lies on the vertex ordinate, the parabola is degenerate")
	}
}

func printParabola(r analysis.ParabolaResult) {
	par := r.Parabola
	fmt.Println("Parabola:")
	fmt.Printf("  x = %s·y² + %s·y + %s\n",
		analysis.FormatMeasurement(par.A, ""),
		analysis.FormatMeasurement(par.B, ""),
		analysis.FormatMeasurement(par.C, ""))
	for _, arm := range r.Arms {
		fmt.Printf("  Arm %s:\n", analysis.FormatPoint(arm.Point))
		fmt.Printf("    Control point: %s\n", analysis.FormatPoint(arm.Control))
		fmt.Printf("    First derivative: %s\n", analysis.FormatMeasurement(arm.Derivatives.First, ""))
		fmt.Printf("    Second derivative: %s\n", analysis.FormatMeasurement(arm.Derivatives.Second, ""))
	}
}
