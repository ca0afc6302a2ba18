package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flexgrid/pkg/screen"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  Style
	images bool
}

// WithStyle selects the visual style. The default is [Card].
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithImages references item image URLs from the SVG.
func WithImages() SVGOption { return func(r *svgRenderer) { r.images = true } }

// RenderSVG draws the tree as an SVG document the size of the screen.
// Strip sections wider than the viewport are clipped at its right edge.
func RenderSVG(root *screen.Node, opts ...SVGOption) []byte {
	r := svgRenderer{style: Card{}}
	for _, opt := range opts {
		opt(&r)
	}
	theme := resolveTheme(root.Theme)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		root.Width, root.Height, root.Width, root.Height)
	r.style.RenderDefs(&buf, theme)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(theme.Background))

	for _, n := range root.Children {
		switch n.Kind {
		case screen.NodeBanner:
			r.style.RenderBanner(&buf, r.box(n, theme))
		case screen.NodeSection:
			r.renderSection(&buf, n, root.Width, theme)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderSection(buf *bytes.Buffer, n *screen.Node, viewport float64, theme screen.Theme) {
	clip := n.Scroll
	if clip {
		id := "clip-" + svgID(n.ID)
		fmt.Fprintf(buf, `  <clipPath id="%s"><rect x="0" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
			id, n.Y, viewport, n.Height)
		fmt.Fprintf(buf, `  <g clip-path="url(#%s)">`+"\n", id)
	}
	if n.Label != "" && n.TitleHeight > 0 {
		pad := 0.0
		if len(n.Children) > 0 {
			pad = n.Children[0].X
		}
		r.style.RenderTitle(buf, Box{
			ID: n.ID, Label: n.Label,
			X: n.X + pad, Y: n.Y, W: n.Width - 2*pad, H: n.TitleHeight,
			Theme: theme,
		})
	}
	for _, item := range n.Children {
		r.style.RenderItem(buf, r.box(item, theme))
	}
	if clip {
		buf.WriteString("  </g>\n")
	}
}

func (r svgRenderer) box(n *screen.Node, theme screen.Theme) Box {
	b := Box{
		ID: n.ID, Label: n.Label, Caption: n.Caption,
		X: n.X, Y: n.Y, W: n.Width, H: n.Height,
		Theme: theme,
	}
	if r.images {
		b.Image = n.Image
	}
	return b
}
