package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/render"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

const (
	defaultPxPerCol = 4.0
	minPxPerCol     = 1.0
	maxPxPerCol     = 20.0
	pxPerColStep    = 0.5

	// header + blank line + footer
	previewChrome = 3
)

var (
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// previewCommand creates the preview command: an interactive terminal view
// that re-lays out the screen whenever the window is resized.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		file     string
		pxPerCol float64
		ascii    bool
	)

	cmd := &cobra.Command{
		Use:   "preview [screen]",
		Short: "Preview screens in the terminal",
		Long: `Preview screens in the terminal.

The terminal width is the viewport: each character column stands for
--scale pixels, so resizing the window re-runs the layout and columns
appear or disappear exactly as they would on a device of that width.

Keys: ←/→ switch screen, ↑/↓ scroll, +/- zoom, a toggle ASCII, q quit.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScreenNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := previewDefinitions(file, args)
			if err != nil {
				return err
			}
			m, err := newPreviewModel(defs, pxPerCol)
			if err != nil {
				return err
			}
			m.ascii = ascii
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "screen definition file (TOML)")
	cmd.Flags().Float64Var(&pxPerCol, "scale", defaultPxPerCol, "pixels per terminal column")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "draw with ASCII characters only")

	return cmd
}

// previewDefinitions resolves what to preview: a file, one built-in, or
// all built-ins starting with the named one.
func previewDefinitions(file string, args []string) ([]screen.Definition, error) {
	if file != "" {
		def, err := screen.Load(file)
		if err != nil {
			return nil, err
		}
		return []screen.Definition{def}, nil
	}
	defs, err := screen.Builtin()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return defs, nil
	}
	for i, d := range defs {
		if d.Name == args[0] {
			return append(defs[i:len(defs):len(defs)], defs[:i]...), nil
		}
	}
	_, err = screen.Lookup(args[0])
	return nil, err
}

// =============================================================================
// previewModel
// =============================================================================

type previewModel struct {
	builders []*screen.Builder
	current  int

	cols, rows int
	pxPerCol   float64
	ascii      bool
	offset     int

	tree  *screen.Node
	lines []string
	err   error
}

func newPreviewModel(defs []screen.Definition, pxPerCol float64) (previewModel, error) {
	if len(defs) == 0 {
		return previewModel{}, fmt.Errorf("no screens to preview")
	}
	builders := make([]*screen.Builder, 0, len(defs))
	for _, d := range defs {
		b, err := screen.NewBuilder(d)
		if err != nil {
			return previewModel{}, err
		}
		builders = append(builders, b)
	}
	if pxPerCol < minPxPerCol {
		pxPerCol = defaultPxPerCol
	}
	return previewModel{builders: builders, pxPerCol: min(pxPerCol, maxPxPerCol)}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		return m.relayout(), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.offset = max(0, m.offset-1)
		case "down", "j":
			m.offset = min(m.maxOffset(), m.offset+1)
		case "pgup":
			m.offset = max(0, m.offset-m.bodyRows())
		case "pgdown", " ":
			m.offset = min(m.maxOffset(), m.offset+m.bodyRows())
		case "right", "l", "tab":
			m.current = (m.current + 1) % len(m.builders)
			m.offset = 0
			return m.relayout(), nil
		case "left", "h", "shift+tab":
			m.current = (m.current + len(m.builders) - 1) % len(m.builders)
			m.offset = 0
			return m.relayout(), nil
		case "+", "=":
			m.pxPerCol = min(maxPxPerCol, m.pxPerCol+pxPerColStep)
			return m.relayout(), nil
		case "-":
			m.pxPerCol = max(minPxPerCol, m.pxPerCol-pxPerColStep)
			return m.relayout(), nil
		case "a":
			m.ascii = !m.ascii
			return m.relayout(), nil
		}
	}
	return m, nil
}

// viewportWidth is the layout width represented by the terminal.
func (m previewModel) viewportWidth() float64 {
	return float64(m.cols) * m.pxPerCol
}

// relayout rebuilds the current screen for the terminal size.
func (m previewModel) relayout() previewModel {
	if m.cols <= 0 {
		return m
	}
	tree, err := m.builders[m.current].Build(m.viewportWidth())
	m.err = err
	m.tree = tree
	m.lines = nil
	if err == nil {
		text := render.RenderText(tree, render.TextOptions{Columns: m.cols, ASCII: m.ascii})
		m.lines = strings.Split(strings.TrimRight(text, "\n"), "\n")
	}
	m.offset = min(m.offset, m.maxOffset())
	return m
}

func (m previewModel) bodyRows() int {
	return max(1, m.rows-previewChrome)
}

func (m previewModel) maxOffset() int {
	return max(0, len(m.lines)-m.bodyRows())
}

func (m previewModel) View() string {
	if m.cols <= 0 {
		return ""
	}
	var b strings.Builder

	def := m.builders[m.current].Definition()
	b.WriteString(StyleTitle.Render(def.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %gpx · %d/%d", m.viewportWidth(), m.current+1, len(m.builders))))
	if m.tree != nil {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d items", m.tree.Count(screen.NodeItem))))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(previewErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else {
		end := min(len(m.lines), m.offset+m.bodyRows())
		for _, line := range m.lines[m.offset:end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(previewHelpStyle.Render("←/→ screen  ↑/↓ scroll  +/- zoom  a ascii  q quit"))
	return b.String()
}
