package render

import (
	"math"
	"strings"

	"github.com/matzehuels/flexgrid/pkg/screen"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// TextOptions configures [RenderText].
type TextOptions struct {
	// Columns is the width of the sketch in characters. Zero means 80.
	Columns int
	// ASCII restricts output to ASCII characters.
	ASCII bool
}

type boxChars struct {
	tl, tr, bl, br, h, v, fill, banner, more rune
}

var (
	unicodeChars = boxChars{'┌', '┐', '└', '┘', '─', '│', '█', '━', '›'}
	asciiChars   = boxChars{'+', '+', '+', '+', '-', '|', '#', '=', '>'}
)

// RenderText sketches the tree as character cells, scaled so the screen
// width spans opts.Columns characters. Strip sections that scroll are cut
// at the viewport edge and marked with an arrow.
func RenderText(root *screen.Node, opts TextOptions) string {
	cols := opts.Columns
	if cols <= 0 {
		cols = 80
	}
	chars := unicodeChars
	if opts.ASCII {
		chars = asciiChars
	}
	if root.Width <= 0 {
		return ""
	}

	c := newCanvas(cols, root.Width, root.Height)
	for _, n := range root.Children {
		switch n.Kind {
		case screen.NodeBanner:
			c.banner(n, chars)
		case screen.NodeSection:
			if n.Label != "" && n.TitleHeight > 0 {
				pad := 0.0
				if len(n.Children) > 0 {
					pad = n.Children[0].X
				}
				c.text(c.col(n.X+pad), c.row(n.Y), n.Label)
			}
			for _, item := range n.Children {
				c.item(item, chars)
			}
			if n.Scroll {
				c.set(cols-1, c.row(n.Y+n.Height/2), chars.more)
			}
		}
	}
	return c.String()
}

type canvas struct {
	cells  [][]rune
	sx, sy float64
	cols   int
}

func newCanvas(cols int, width, height float64) *canvas {
	sx := float64(cols) / width
	sy := sx / cellAspect
	rows := max(1, int(math.Ceil(height*sy)))
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return &canvas{cells: cells, sx: sx, sy: sy, cols: cols}
}

func (c *canvas) col(x float64) int { return int(math.Round(x * c.sx)) }
func (c *canvas) row(y float64) int { return int(math.Round(y * c.sy)) }

func (c *canvas) set(x, y int, r rune) {
	if y < 0 || y >= len(c.cells) || x < 0 || x >= c.cols {
		return
	}
	c.cells[y][x] = r
}

func (c *canvas) text(x, y int, s string) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r)
	}
}

// span maps [a, b) in points to an inclusive cell range of at least one
// cell.
func span(a, b float64, scale float64) (int, int) {
	lo := int(math.Round(a * scale))
	hi := int(math.Round(b*scale)) - 1
	return lo, max(lo, hi)
}

func (c *canvas) banner(n *screen.Node, ch boxChars) {
	y0, y1 := span(n.Y, n.Bottom(), c.sy)
	for y := y0; y <= y1; y++ {
		for x := 0; x < c.cols; x++ {
			c.set(x, y, ch.banner)
		}
	}
	label := truncateCells(" "+n.Label+" ", c.cols)
	c.text((c.cols-len([]rune(label)))/2, (y0+y1)/2, label)
}

func (c *canvas) item(n *screen.Node, ch boxChars) {
	x0, x1 := span(n.X, n.Right(), c.sx)
	y0, y1 := span(n.Y, n.Bottom(), c.sy)

	if x1-x0 < 2 || y1-y0 < 1 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.set(x, y, ch.fill)
			}
		}
		return
	}

	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, ch.h)
		c.set(x, y1, ch.h)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, ch.v)
		c.set(x1, y, ch.v)
	}
	c.set(x0, y0, ch.tl)
	c.set(x1, y0, ch.tr)
	c.set(x0, y1, ch.bl)
	c.set(x1, y1, ch.br)

	inner := x1 - x0 - 1
	if y1-y0 >= 2 && n.Label != "" {
		c.text(x0+1, y0+1, truncateCells(n.Label, inner))
	}
	if y1-y0 >= 3 && n.Caption != "" {
		c.text(x0+1, y0+2, truncateCells(n.Caption, inner))
	}
}

func truncateCells(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-1]) + "…"
}

func (c *canvas) String() string {
	var sb strings.Builder
	for _, line := range c.cells {
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
