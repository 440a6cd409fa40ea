package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps [name or file]",
	Short: "Show and validate a capture protocol",
	Long: `Print the steps of a built-in protocol or of a step configuration file.
Files are validated while loading, so this also checks a configuration
before it is used in the application. Without an argument the built-in
protocols are listed.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSteps,
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		fmt.Println("Built-in protocols:")
		for _, name := range protocol.BuiltinNames() {
			cfg, err := protocol.BuiltinConfig(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s (%d steps)\n", name, cfg.Len())
		}
		return
	}

	cfg, err := protocol.Resolve(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Protocol: %s\n", cfg.Name)
	fmt.Printf("Steps: %d\n\n", cfg.Len())
	for _, s := range cfg.Steps() {
		fmt.Printf("%d. %s\n", s.ID, s.Label)
		fmt.Printf("   Kind: %s (%d point(s))\n", s.Kind, s.Kind.Arity())
		if s.HasParent() {
			fmt.Printf("   Parent: step %d\n", s.Parent)
		}
		if s.Role != protocol.RoleNone {
			fmt.Printf("   Role: %s\n", s.Role)
		}
		if s.Text != "" {
			fmt.Printf("   %s\n", s.Text)
		}
	}
}
