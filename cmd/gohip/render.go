package main

import (
	"fmt"
	"image"
	"os"
	"slices"
	"strings"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/imageio"
	"github.com/philipparndt/gohip/pkg/overlay"
	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/philipparndt/gohip/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	renderSteps     string
	renderOutput    string
	renderColor     string
	renderLineWidth float64
	renderMaxSize   int
)

var renderCmd = &cobra.Command{
	Use:   "render <image> <x,y>...",
	Short: "Draw the annotation overlay of captured points onto an image",
	Long: `Capture the given points on the image, exactly as clicks in the application
would, and save the image with the annotation overlay as PNG.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderSteps, "steps", "s", "", "built-in protocol name or step configuration file")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output PNG file (required)")
	renderCmd.Flags().StringVarP(&renderColor, "color", "c", "red", "overlay colour ("+strings.Join(paletteNames(), ", ")+")")
	renderCmd.Flags().Float64Var(&renderLineWidth, "line-width", viewer.DefaultStyle().LineWidth, "overlay line width in image pixels")
	renderCmd.Flags().IntVar(&renderMaxSize, "max-size", 0, "scale the result down to fit this many pixels per side (0 keeps the size)")

	renderCmd.MarkFlagRequired("output")
}

func paletteNames() []string {
	names := make([]string, 0, len(viewer.Palette))
	for name := range viewer.Palette {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func runRender(cmd *cobra.Command, args []string) {
	cfg, err := protocol.Resolve(renderSteps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	col, ok := viewer.Palette[strings.ToLower(renderColor)]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown colour %q\n", renderColor)
		os.Exit(1)
	}
	points, err := parsePoints(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img, err := imageio.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := protocol.ClearAll(protocol.New(cfg))
	for _, pt := range points {
		p = protocol.ApplyClick(p, pt)
	}
	result := analysis.Measure(p)

	b := img.Bounds()
	scene := overlay.Build(p, result, float64(b.Dx()), float64(b.Dy()))
	out := viewer.Rasterize(img, scene, viewer.Style{Color: col, LineWidth: renderLineWidth})

	var final image.Image = out
	if renderMaxSize > 0 {
		final = viewer.ScaleToFit(out, renderMaxSize, renderMaxSize)
	}
	if err := imageio.SavePNG(renderOutput, final); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %d marker(s), %d line(s) and %d curve(s) to: %s\n",
		len(scene.Markers), len(scene.Segments), len(scene.Paths), renderOutput)
	if result.Hip != nil {
		fmt.Println()
		printResult(result)
	}
}
