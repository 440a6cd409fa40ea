package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gohip/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gohip",
	Short: "Hip radiograph measurements from the command line",
	Long: `gohip runs the measurement engine of GoHip without a window.
It fits ellipses and parabolas to reference points, computes the abduction
and anteversion angles of a hip protocol, replays recorded capture sessions
and renders the annotation overlay onto an image.

Points are given in image pixel coordinates as "x,y".`,
	Version: version.GetVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
