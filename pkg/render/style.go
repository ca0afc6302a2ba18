package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

// Style names.
const (
	StyleSimple = "simple"
	StyleCard   = "card"
)

// Style defines the visual appearance of an SVG mock-up.
type Style interface {
	// Name returns the style's registered name.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, gradients).
	RenderDefs(buf *bytes.Buffer, t screen.Theme)
	// RenderBanner writes a header or footer.
	RenderBanner(buf *bytes.Buffer, b Box)
	// RenderTitle writes a section title.
	RenderTitle(buf *bytes.Buffer, b Box)
	// RenderItem writes one grid item.
	RenderItem(buf *bytes.Buffer, b Box)
}

// Box contains everything a style needs to draw one element.
type Box struct {
	ID         string
	Label      string
	Caption    string
	Image      string // empty unless images are enabled
	X, Y, W, H float64
	Theme      screen.Theme
}

// CX returns the horizontal center.
func (b Box) CX() float64 { return b.X + b.W/2 }

// CY returns the vertical center.
func (b Box) CY() float64 { return b.Y + b.H/2 }

// StyleByName returns the style registered under name.
func StyleByName(name string) (Style, error) {
	switch name {
	case StyleSimple:
		return Simple{}, nil
	case StyleCard, "":
		return Card{}, nil
	}
	return nil, flexerrors.New(flexerrors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, card)", name)
}

var defaultTheme = screen.Theme{
	Background: "#ffffff",
	Surface:    "#ffffff",
	Accent:     "#6200ea",
	Text:       "#333333",
}

func resolveTheme(t *screen.Theme) screen.Theme {
	out := defaultTheme
	if t == nil {
		return out
	}
	if t.Background != "" {
		out.Background = t.Background
	}
	if t.Surface != "" {
		out.Surface = t.Surface
	}
	if t.Accent != "" {
		out.Accent = t.Accent
	}
	if t.Text != "" {
		out.Text = t.Text
	}
	return out
}

// =============================================================================
// Simple
// =============================================================================

// Simple draws flat outlined boxes.
type Simple struct{}

func (Simple) Name() string { return StyleSimple }

func (Simple) RenderDefs(*bytes.Buffer, screen.Theme) {}

func (Simple) RenderBanner(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		svgID(b.ID), b.X, b.Y, b.W, b.H, EscapeXML(b.Theme.Accent))
	renderCenteredText(buf, b, b.Label, "#ffffff", "bold")
}

func (Simple) RenderTitle(buf *bytes.Buffer, b Box) {
	renderLeftText(buf, b, b.Theme.Text)
}

func (Simple) RenderItem(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="%s" class="item" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		svgID(b.ID), b.X, b.Y, b.W, b.H, EscapeXML(b.Theme.Surface), EscapeXML(b.Theme.Text))
	renderItemContent(buf, b, 0)
}

// =============================================================================
// Card
// =============================================================================

// Card draws rounded, shadowed cards on the theme background.
type Card struct{}

const (
	cardRadius  = 10.0
	cardPadding = 8.0
)

func (Card) Name() string { return StyleCard }

func (Card) RenderDefs(buf *bytes.Buffer, _ screen.Theme) {
	buf.WriteString(`  <defs>
    <filter id="card-shadow" x="-10%" y="-10%" width="120%" height="130%">
      <feDropShadow dx="0" dy="2" stdDeviation="2" flood-color="#000000" flood-opacity="0.2"/>
    </filter>
  </defs>
`)
}

func (Card) RenderBanner(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		svgID(b.ID), b.X, b.Y, b.W, b.H, EscapeXML(b.Theme.Accent))
	renderCenteredText(buf, b, b.Label, "#ffffff", "bold")
}

func (Card) RenderTitle(buf *bytes.Buffer, b Box) {
	renderLeftText(buf, b, b.Theme.Text)
}

func (Card) RenderItem(buf *bytes.Buffer, b Box) {
	r := min(cardRadius, b.W/2, b.H/2)
	fmt.Fprintf(buf, `  <rect id="%s" class="item" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" ry="%.2f" fill="%s" filter="url(#card-shadow)"/>`+"\n",
		svgID(b.ID), b.X, b.Y, b.W, b.H, r, r, EscapeXML(b.Theme.Surface))
	renderItemContent(buf, b, cardPadding)
}

// =============================================================================
// Shared drawing helpers
// =============================================================================

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 18.0
	labelBand       = 24.0
)

// FontSize returns a font size that fits text of the given length into a
// box of the given size, clamped to a readable range.
func FontSize(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// Truncate shortens label so it fits availWidth at fontSize.
func Truncate(label string, availWidth, fontSize float64) string {
	maxChars := max(3, int(availWidth*fontWidthRatio/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func svgID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, id)
}

func renderCenteredText(buf *bytes.Buffer, b Box, text, color, weight string) {
	if text == "" {
		return
	}
	size := FontSize(b.W, b.H, len(text))
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f" font-weight="%s" fill="%s">%s</text>`+"\n",
		b.CX(), b.CY(), size, weight, EscapeXML(color), EscapeXML(Truncate(text, b.W, size)))
}

func renderLeftText(buf *bytes.Buffer, b Box, color string) {
	if b.Label == "" {
		return
	}
	size := min(fontSizeMax, b.H*fontHeightRatio)
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f" font-weight="bold" fill="%s">%s</text>`+"\n",
		b.X, b.CY(), size, EscapeXML(color), EscapeXML(Truncate(b.Label, b.W, size)))
}

// renderItemContent draws an item's image, label, and caption. Without an
// image the label is centered; with one, the image fills the box above a
// label band.
func renderItemContent(buf *bytes.Buffer, b Box, inset float64) {
	inner := Box{X: b.X + inset, Y: b.Y + inset, W: b.W - 2*inset, H: b.H - 2*inset}
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	text := b.Label
	if b.Image == "" {
		if b.Caption != "" && inner.H >= 2*labelBand {
			top := Box{X: inner.X, Y: inner.Y, W: inner.W, H: inner.H / 2}
			bottom := Box{X: inner.X, Y: inner.Y + inner.H/2, W: inner.W, H: inner.H / 2}
			renderCenteredText(buf, top, text, b.Theme.Text, "bold")
			renderCenteredText(buf, bottom, b.Caption, b.Theme.Text, "normal")
			return
		}
		renderCenteredText(buf, inner, text, b.Theme.Text, "500")
		return
	}

	band := 0.0
	if text != "" {
		band = min(labelBand, inner.H/3)
	}
	fmt.Fprintf(buf, `  <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid slice"/>`+"\n",
		EscapeXML(b.Image), inner.X, inner.Y, inner.W, inner.H-band)
	if band > 0 {
		renderCenteredText(buf, Box{X: inner.X, Y: inner.Y + inner.H - band, W: inner.W, H: band}, text, b.Theme.Text, "500")
	}
}
