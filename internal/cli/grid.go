package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/grid"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
)

const (
	gridOutputTable = "table"
	gridOutputJSON  = "json"
)

// gridCommand creates the grid command for computing a raw layout.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.GridOptions{
		Spec: grid.Spec{ContainerWidth: pipeline.DefaultWidth},
	}

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Compute a responsive grid for a number of items",
		Long: `Compute a responsive grid for a number of items.

Give either a fixed column count (--columns) or a minimum item width
(--min-width); with the latter the column count adapts to --width.
Item heights come from --item-height or --aspect (height = width × ratio).`,
		Example: `  flexgrid grid -n 8 --columns 2 --hgap 20 --vgap 20 --padding 10 --item-height 160
  flexgrid grid -n 12 --width 1024 --min-width 200 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != gridOutputTable && output != gridOutputJSON {
				return fmt.Errorf("invalid output: %q (must be table or json)", output)
			}
			opts.Refresh = noCache
			return c.runGrid(cmd.Context(), cmd.OutOrStdout(), opts, output)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.ItemCount, "items", "n", 0, "number of items to place")
	f.Float64Var(&opts.Spec.ContainerWidth, "width", opts.Spec.ContainerWidth, "container width")
	f.IntVar(&opts.Spec.Columns, "columns", 0, "fixed column count")
	f.Float64Var(&opts.Spec.MinItemWidth, "min-width", 0, "minimum item width (adaptive columns)")
	f.Float64Var(&opts.Spec.HorizontalGap, "hgap", 0, "horizontal gap between columns")
	f.Float64Var(&opts.Spec.VerticalGap, "vgap", 0, "vertical gap between rows")
	f.Float64Var(&opts.Spec.Padding, "padding", 0, "padding around the grid")
	f.Float64Var(&opts.AspectRatio, "aspect", 0, "item height as a multiple of item width (default 1)")
	f.Float64Var(&opts.ItemHeight, "item-height", 0, "fixed item height (overrides --aspect)")
	f.StringVarP(&output, "output", "o", gridOutputTable, "output: table, json")
	f.BoolVar(&noCache, "no-cache", false, "ignore cached results")

	return cmd
}

func (c *CLI) runGrid(ctx context.Context, w io.Writer, opts pipeline.GridOptions, output string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, hit, err := runner.GridWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}

	if output == gridOutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintln(w, gridSummary(res))
	fmt.Fprintln(w, statsLine(len(res.Placements), 0, hit))
	if len(res.Placements) > 0 {
		fmt.Fprintln(w, placementTable(res.Placements))
	}
	return nil
}

// gridSummary describes a result on one line, e.g.
// "2 columns × 4 rows · item width 175 · 390×730".
func gridSummary(res grid.Result) string {
	return fmt.Sprintf("%s columns × %s rows · item width %s · %s×%s",
		StyleNumber.Render(strconv.Itoa(res.Columns)),
		StyleNumber.Render(strconv.Itoa(res.Rows)),
		StyleNumber.Render(formatNum(res.ItemWidth)),
		formatNum(res.Width), formatNum(res.Height))
}

func placementTable(ps []grid.Placement) string {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []string{
			strconv.Itoa(p.Index),
			strconv.Itoa(p.Row),
			strconv.Itoa(p.Column),
			formatNum(p.X),
			formatNum(p.Y),
			formatNum(p.Width),
			formatNum(p.Height),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("#", "Row", "Col", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		}).
		Render()
}

// formatNum prints integral values without decimals and others with at
// most two.
func formatNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
