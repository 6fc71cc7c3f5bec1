package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts via cobra.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the named shell.

Load it for the current session:

  bash:        source <(sccmap completion bash)
  zsh:         source <(sccmap completion zsh)
  fish:        sccmap completion fish | source
  powershell:  sccmap completion powershell | Out-String | Invoke-Expression

Or install it permanently, e.g.:

  sccmap completion bash > /etc/bash_completion.d/sccmap
  sccmap completion zsh  > "${fpath[1]}/_sccmap"
  sccmap completion fish > ~/.config/fish/completions/sccmap.fish

Zsh needs compinit enabled once: echo "autoload -U compinit; compinit" >> ~/.zshrc`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
