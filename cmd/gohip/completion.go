package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for gohip.

To load completions:

Bash:

  $ source <(gohip completion bash)

  To load completions for each session, execute once:
  Linux:
    $ gohip completion bash > /etc/bash_completion.d/gohip
  macOS:
    $ gohip completion bash > /usr/local/etc/bash_completion.d/gohip

Zsh:

  If shell completion is not already enabled in your environment,
  you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
  $ gohip completion zsh > "${fpath[1]}/_gohip"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ gohip completion fish | source

  To load completions for each session, execute once:
  $ gohip completion fish > ~/.config/fish/completions/gohip.fish

PowerShell:

  PS> gohip completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
