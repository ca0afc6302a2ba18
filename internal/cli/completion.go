package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
}

// completionCommand prints a shell completion script. Besides subcommands
// and flags, the scripts complete built-in screen names for render, preview
// and screens show.
func (c *CLI) completionCommand() *cobra.Command {
	shells := slices.Sorted(func(yield func(string) bool) {
		for name := range completionShells {
			if !yield(name) {
				return
			}
		}
	})

	return &cobra.Command{
		Use:   "completion <" + strings.Join(shells, "|") + ">",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for flexgrid.

  source <(flexgrid completion bash)
  flexgrid completion zsh > "${fpath[1]}/_flexgrid"
  flexgrid completion fish > ~/.config/fish/completions/flexgrid.fish

Screen names complete after "flexgrid render", "flexgrid preview" and
"flexgrid screens show".`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
