package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/pipeline"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

// renderCommand creates the render command for turning a screen into output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		file       string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [screen]",
		Short: "Lay out a screen and render it",
		Long: `Lay out a screen at a viewport width and render it.

The screen is either a built-in (see 'flexgrid screens') or a TOML
definition given with --file. Supported formats:

  svg   mock-up of the screen
  json  presentation tree with resolved geometry
  txt   character-cell preview
  dot   Graphviz source of the presentation tree
  tree  presentation tree diagram (SVG)
  png   presentation tree diagram (PNG)

Results are cached, so re-rendering an unchanged screen is instant.`,
		Example: `  flexgrid render cards
  flexgrid render profile --width 800 -f svg,txt -o profile-wide
  flexgrid render --file myscreen.toml -f json -o -`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScreenNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			switch {
			case file != "" && len(args) > 0:
				return fmt.Errorf("give either a screen name or --file, not both")
			case file != "":
				def, err := screen.Load(file)
				if err != nil {
					return err
				}
				opts.Definition = &def
			case len(args) == 1:
				opts.Screen = args[0]
			default:
				return fmt.Errorf("screen name or --file is required")
			}
			if output == "-" && len(opts.Formats) > 1 {
				return fmt.Errorf("stdout output (-o -) needs exactly one format")
			}
			opts.Refresh = noCache
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path, or - for stdout (default: screen name)")
	cmd.Flags().StringVar(&file, "file", "", "screen definition file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "ignore cached results")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width (default: screen width or 390)")
	cmd.Flags().StringVar(&opts.Style, "style", pipeline.DefaultStyle, "visual style: card (default), simple")
	cmd.Flags().BoolVar(&opts.Images, "images", false, "embed item images in SVG output")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include geometry in tree diagrams")
	cmd.Flags().IntVar(&opts.TextColumns, "columns", pipeline.DefaultTextColumns, "character columns for txt output")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	if output != "-" {
		spinner.Start()
	}
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if output == "-" {
		_, err := os.Stdout.Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	base := output
	if base == "" {
		base = res.Screen
	}
	base = stripFormatExt(base)

	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := base + formatExt(format)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	prog.done(fmt.Sprintf("Rendered %s at %gpx", res.Screen, res.Tree.Width))
	printSuccess("Rendered %s", StyleValue.Render(res.Screen))
	printStats(res.Stats.ItemCount, res.Stats.NodeCount, res.CacheInfo.BuildHit && res.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if opts.Definition == nil {
		printNextStep("Preview in the terminal", appName+" preview "+res.Screen)
	}
	return nil
}

// formatExt maps a format to its file suffix. Tree diagrams get a
// ".tree" infix so they don't collide with the screen SVG.
func formatExt(format string) string {
	switch format {
	case pipeline.FormatTreeSVG:
		return ".tree.svg"
	case pipeline.FormatTreePNG:
		return ".tree.png"
	default:
		return "." + format
	}
}

// stripFormatExt removes a known output suffix from a user-supplied path.
func stripFormatExt(path string) string {
	for _, suffix := range []string{".tree.svg", ".tree.png"} {
		if strings.HasSuffix(path, suffix) {
			return strings.TrimSuffix(path, suffix)
		}
	}
	ext := filepath.Ext(path)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(path, ext)
	}
	return path
}
