package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flexgrid/pkg/screen"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Detailed adds each node's geometry to its label.
	Detailed bool
}

// ToDOT converts the presentation tree to Graphviz DOT, one graph node per
// tree node with edges from parent to child. The result can be rendered
// with [TreeSVG] or [TreePNG].
func ToDOT(root *screen.Node, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	root.Walk(func(n *screen.Node, _ int) bool {
		label := fmtLabel(n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, label), ", "))
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", n.ID, c.ID))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *screen.Node, detailed bool) string {
	name := n.Label
	if name == "" {
		name = n.ID
	}
	if n.Kind == screen.NodeSection && n.Layout != "" {
		name = fmt.Sprintf("%s (%s)", name, n.Layout)
	}
	if !detailed {
		return name
	}
	parts := []string{
		name,
		fmt.Sprintf("%gx%g @ (%g, %g)", n.Width, n.Height, n.X, n.Y),
	}
	if n.Kind == screen.NodeItem {
		parts = append(parts, fmt.Sprintf("row %d, col %d", n.Row, n.Column))
	}
	if n.Columns > 0 {
		parts = append(parts, fmt.Sprintf("columns: %d", n.Columns))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *screen.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case screen.NodeScreen:
		attrs = append(attrs, "shape=box3d", "fillcolor=\"#ede7f6\"")
	case screen.NodeBanner:
		attrs = append(attrs, "fillcolor=\"#d1c4e9\"")
	case screen.NodeSection:
		attrs = append(attrs, "shape=folder", "fillcolor=lightgrey")
		if n.Scroll {
			attrs = append(attrs, "style=\"filled,dashed\"")
		}
	}
	return attrs
}

// TreeSVG renders a DOT graph to SVG using Graphviz.
func TreeSVG(dot string) ([]byte, error) {
	out, err := renderDOT(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// TreePNG renders a DOT graph to PNG using Graphviz.
func TreePNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with one
// whose viewBox starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
