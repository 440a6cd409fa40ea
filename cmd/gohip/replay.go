package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gohip/pkg/export"
	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/philipparndt/gohip/pkg/session"
	"github.com/spf13/cobra"
)

var (
	replaySteps       string
	replayOutput      string
	replayTabs        bool
	replayCoordinates bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a recorded capture session and export its records",
	Long: `Replay an event script against a fresh session and export every
recorded measurement. A script holds one command per line:

  images <path>...        start an image batch
  click <x> <y>           capture a point in image coordinates
  next | back | undo      navigate the protocol
  clear | clear-all       reset the active step or the whole protocol
  id <name>               set the record ID
  laterality left|right   toggle the laterality
  next-image              open the next image of the batch

Use "-" to read the script from standard input.`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replaySteps, "steps", "s", "", "built-in protocol name or step configuration file")
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "", "write the records to this file instead of stdout")
	replayCmd.Flags().BoolVar(&replayTabs, "tabs", false, "separate columns with tabs")
	replayCmd.Flags().BoolVar(&replayCoordinates, "coordinates", false, "include the captured coordinates")
}

func runReplay(cmd *cobra.Command, args []string) {
	cfg, err := protocol.Resolve(replaySteps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	in := os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	s := session.New(cfg)
	if err := session.RunScript(s, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	records := s.Records()
	for _, r := range records {
		if !r.Finite() {
			fmt.Fprintf(os.Stderr, "Warning: record %q contains undefined angles\n", r.ID)
		}
	}

	opts := export.Options{Coordinates: replayCoordinates}
	if replayTabs {
		opts.Delimiter = '\t'
	}

	if replayOutput == "" {
		if err := export.Write(os.Stdout, records, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := export.WriteFile(replayOutput, records, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d record(s) to: %s\n", len(records), replayOutput)
}
