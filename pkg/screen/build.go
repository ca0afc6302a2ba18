package screen

import (
	"fmt"

	"github.com/matzehuels/flexgrid/pkg/compose"
	"github.com/matzehuels/flexgrid/pkg/grid"
)

// Builder turns a definition into presentation trees. It keeps one
// composer per section, so repeated builds at the same width skip the grid
// engine. A Builder is safe for concurrent use.
type Builder struct {
	def      Definition
	sections []sectionBuilder
}

type sectionBuilder struct {
	Section
	items    []compose.Item
	composer *compose.Composer
}

// NewBuilder validates def and prepares a builder for it.
func NewBuilder(def Definition) (*Builder, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{def: def, sections: make([]sectionBuilder, len(def.Sections))}
	for i, s := range def.Sections {
		var opt grid.Option
		if s.ItemHeight > 0 {
			opt = grid.WithFixedHeight(s.ItemHeight)
		} else {
			opt = grid.WithAspectRatio(s.AspectRatio)
		}
		b.sections[i] = sectionBuilder{
			Section:  s,
			items:    compose.WithDerivedIDs(def.Name+"/"+s.Name, s.Items),
			composer: compose.New(opt),
		}
	}
	return b, nil
}

// Definition returns the definition the builder was created with.
func (b *Builder) Definition() Definition { return b.def }

// Computed returns how many section layouts the builder has computed.
func (b *Builder) Computed() int {
	total := 0
	for _, s := range b.sections {
		total += s.composer.Computed()
	}
	return total
}

// Build lays the screen out for a viewport of the given width. A width of
// zero or less falls back to the definition's width, then to [DefaultWidth].
func (b *Builder) Build(width float64) (*Node, error) {
	width = b.resolveWidth(width)
	theme := b.def.Theme
	root := &Node{
		ID:    b.def.Name,
		Kind:  NodeScreen,
		Label: b.def.Title,
		Width: width,
		Theme: &theme,
	}

	y := 0.0
	if h := b.def.Header; h != nil {
		n := banner(b.def.Name+"/header", h, y, width)
		root.Children = append(root.Children, n)
		y = n.Bottom()
	}
	for i := range b.sections {
		n, err := b.sections[i].build(b.def.Name, y, width)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", b.sections[i].Name, err)
		}
		root.Children = append(root.Children, n)
		y = n.Bottom()
	}
	if f := b.def.Footer; f != nil {
		n := banner(b.def.Name+"/footer", f, y, width)
		root.Children = append(root.Children, n)
		y = n.Bottom()
	}
	root.Height = y
	return root, nil
}

func (b *Builder) resolveWidth(width float64) float64 {
	switch {
	case width > 0:
		return width
	case b.def.Width > 0:
		return b.def.Width
	default:
		return DefaultWidth
	}
}

// Build is a convenience wrapper for one-off builds.
func Build(def Definition, width float64) (*Node, error) {
	b, err := NewBuilder(def)
	if err != nil {
		return nil, err
	}
	return b.Build(width)
}

func banner(id string, b *Banner, y, width float64) *Node {
	h := b.Height
	if h == 0 {
		h = defaultBannerHeight
	}
	return &Node{ID: id, Kind: NodeBanner, Label: b.Text, Y: y, Width: width, Height: h}
}

// spec resolves the grid spec for a viewport width.
func (s *sectionBuilder) spec(width float64) grid.Spec {
	spec := grid.Spec{
		ContainerWidth: width,
		HorizontalGap:  s.HorizontalGap,
		VerticalGap:    s.VerticalGap,
		Padding:        s.Padding,
	}
	switch s.Kind {
	case KindStrip:
		// Strips never wrap: the container grows until every item fits on
		// one row and the viewport scrolls horizontally.
		n := len(s.items)
		spec.Columns = max(n, 1)
		spec.ContainerWidth = 2*s.Padding + float64(spec.Columns)*s.ItemWidth + float64(spec.Columns-1)*s.HorizontalGap
	case KindList:
		spec.Columns = 1
	default:
		if len(s.Breakpoints) > 0 {
			return s.Breakpoints.Apply(spec)
		}
		spec.Columns = s.Columns
		spec.MinItemWidth = s.MinItemWidth
	}
	return spec
}

func (s *sectionBuilder) titleHeight() float64 {
	switch {
	case s.Title == "":
		return 0
	case s.TitleHeight > 0:
		return s.TitleHeight
	default:
		return defaultTitleHeight
	}
}

func (s *sectionBuilder) build(screenName string, y, width float64) (*Node, error) {
	seq, err := s.composer.Compose(s.items, s.spec(width))
	if err != nil {
		return nil, err
	}
	res := seq.Result()
	titleH := s.titleHeight()

	node := &Node{
		ID:           screenName + "/" + s.Name,
		Kind:         NodeSection,
		Label:        s.Title,
		Y:            y,
		Width:        width,
		Height:       titleH + res.Height,
		Layout:       s.Kind,
		Columns:      res.Columns,
		TitleHeight:  titleH,
		ContentWidth: res.Width,
		Scroll:       res.Width > width,
		Children:     make([]*Node, 0, seq.Len()),
	}
	for item, p := range seq.All() {
		node.Children = append(node.Children, &Node{
			ID:      item.ID,
			Kind:    NodeItem,
			Label:   item.Label,
			Caption: item.Caption,
			Image:   item.Image,
			X:       p.X,
			Y:       y + titleH + p.Y,
			Width:   p.Width,
			Height:  p.Height,
			Row:     p.Row,
			Column:  p.Column,
		})
	}
	return node, nil
}
