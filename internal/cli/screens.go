package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/screen"
)

// screensCommand creates the screens command listing built-in screens.
func (c *CLI) screensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screens",
		Short: "List the built-in screens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := screen.Builtin()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), screenTable(defs))
			return nil
		},
	}
	cmd.AddCommand(c.screensShowCommand())
	return cmd
}

// screensShowCommand prints a built-in definition as TOML, ready to copy
// and edit for use with --file.
func (c *CLI) screensShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show [screen]",
		Short:             "Print a built-in screen definition as TOML",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScreenNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := screen.Lookup(args[0])
			if err != nil {
				return err
			}
			data, err := screen.Encode(def)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func screenTable(defs []screen.Definition) string {
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		var kinds []string
		items := 0
		for _, s := range d.Sections {
			kinds = append(kinds, s.Kind)
			items += len(s.Items)
		}
		rows = append(rows, []string{d.Name, d.Title, strings.Join(kinds, ", "), strconv.Itoa(items)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Screen", "Title", "Sections", "Items").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return styleTableHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 3:
				return base.Align(lipgloss.Right)
			}
			return base
		}).
		Render()
}

func completeScreenNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, name := range screen.Names() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
