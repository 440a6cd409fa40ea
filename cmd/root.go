package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/gohip/internal/app"
	"github.com/spf13/cobra"
)

var (
	stepsPath string
	watch     bool
)

var rootCmd = &cobra.Command{
	Use:   "gohip-gui [image or folder...]",
	Short: "Hip radiograph annotation and measurement",
	Long: `GoHip guides you through clicking reference points on a radiograph and
measures the pelvic abduction and femoral anteversion angles from them.

Images and folders given as arguments are opened as one batch.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := app.Run(app.Options{
			StepsPath: stepsPath,
			Watch:     watch,
			Images:    args,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&stepsPath, "steps", "s", "", "built-in protocol name (hip, parabola) or step configuration file")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the step configuration file when it changes")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
