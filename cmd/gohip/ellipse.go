package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	diameter1X, diameter1Y float64
	diameter2X, diameter2Y float64
	peripheralX            float64
	peripheralY            float64
)

var ellipseCmd = &cobra.Command{
	Use:   "ellipse",
	Short: "Fit an ellipse to a diameter and a perimeter point",
	Long: `Fit the ellipse whose major axis is the given diameter and which passes
through the peripheral point. Prints the drawing parameters and the chord
through the center perpendicular to the major axis.`,
	Args: cobra.NoArgs,
	Run:  runEllipse,
}

func init() {
	rootCmd.AddCommand(ellipseCmd)

	ellipseCmd.Flags().Float64Var(&diameter1X, "x1", 0.0, "X coordinate of the first diameter endpoint")
	ellipseCmd.Flags().Float64Var(&diameter1Y, "y1", 0.0, "Y coordinate of the first diameter endpoint")
	ellipseCmd.Flags().Float64Var(&diameter2X, "x2", 0.0, "X coordinate of the second diameter endpoint")
	ellipseCmd.Flags().Float64Var(&diameter2Y, "y2", 0.0, "Y coordinate of the second diameter endpoint")
	ellipseCmd.Flags().Float64Var(&peripheralX, "px", 0.0, "X coordinate of the peripheral point")
	ellipseCmd.Flags().Float64Var(&peripheralY, "py", 0.0, "Y coordinate of the peripheral point")

	ellipseCmd.MarkFlagsRequiredTogether("x1", "y1", "x2", "y2", "px", "py")
}

func runEllipse(cmd *cobra.Command, args []string) {
	diameter := [2]geometry.Point{
		geometry.NewPoint(diameter1X, diameter1Y),
		geometry.NewPoint(diameter2X, diameter2Y),
	}
	peripheral := geometry.NewPoint(peripheralX, peripheralY)

	e := geometry.FitEllipse(diameter, peripheral)
	chord := geometry.PerpendicularChord(diameter, peripheral)

	fmt.Println("Ellipse Fit")
	fmt.Println("===========")
	fmt.Printf("Diameter: %s - %s\n", analysis.FormatPoint(diameter[0]), analysis.FormatPoint(diameter[1]))
	fmt.Printf("Peripheral point: %s\n\n", analysis.FormatPoint(peripheral))

	fmt.Printf("Center: %s\n", analysis.FormatPoint(e.Center))
	fmt.Printf("Semi-major axis: %s\n", analysis.FormatMeasurement(e.SemiMajor, "px"))
	fmt.Printf("Semi-minor axis: %s\n", analysis.FormatMeasurement(e.SemiMinor, "px"))
	fmt.Printf("Rotation: %s (%s)\n",
		analysis.FormatMeasurement(e.Rotation.Radians(), "rad"),
		analysis.FormatMeasurement(e.Rotation.Degrees(), "°"))
	fmt.Printf("Sweep: %.0f° to %.0f°\n\n", e.SweepStart, e.SweepEnd)

	fmt.Println("Perpendicular chord:")
	fmt.Printf("  Start: %s\n", analysis.FormatPoint(chord[0]))
	fmt.Printf("  End: %s\n", analysis.FormatPoint(chord[1]))

	if !e.Finite() {
		fmt.Fprintln(os.Stderr, "Warning: the peripheral point is not reachable by an ellipse on this diameter")
	}
}
