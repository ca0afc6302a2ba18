package screen

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flexgrid/pkg/compose"
	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/grid"
)

// DefaultWidth is the viewport width used when neither the caller nor the
// definition names one. It matches a common phone width in points.
const DefaultWidth = 390.0

// Section kinds.
const (
	KindGrid  = "grid"
	KindList  = "list"
	KindStrip = "strip"
)

const (
	defaultBannerHeight = 60.0
	defaultTitleHeight  = 32.0
)

// Definition describes a screen.
type Definition struct {
	Name     string    `toml:"name" json:"name"`
	Title    string    `toml:"title" json:"title,omitempty"`
	Width    float64   `toml:"width" json:"width,omitempty"`
	Theme    Theme     `toml:"theme" json:"theme"`
	Header   *Banner   `toml:"header" json:"header,omitempty"`
	Footer   *Banner   `toml:"footer" json:"footer,omitempty"`
	Sections []Section `toml:"sections" json:"sections"`
}

// Theme holds the colors a renderer may use. Empty fields fall back to the
// renderer's defaults.
type Theme struct {
	Background string `toml:"background" json:"background,omitempty"`
	Surface    string `toml:"surface" json:"surface,omitempty"`
	Accent     string `toml:"accent" json:"accent,omitempty"`
	Text       string `toml:"text" json:"text,omitempty"`
}

// Banner is a fixed-height header or footer.
type Banner struct {
	Text   string  `toml:"text" json:"text"`
	Height float64 `toml:"height" json:"height,omitempty"`
}

// Section is one vertically stacked block of items.
type Section struct {
	Name          string           `toml:"name" json:"name"`
	Title         string           `toml:"title" json:"title,omitempty"`
	Kind          string           `toml:"kind" json:"kind"`
	Columns       int              `toml:"columns" json:"columns,omitempty"`
	MinItemWidth  float64          `toml:"min_item_width" json:"min_item_width,omitempty"`
	Breakpoints   grid.Breakpoints `toml:"breakpoints" json:"breakpoints,omitempty"`
	HorizontalGap float64          `toml:"horizontal_gap" json:"horizontal_gap,omitempty"`
	VerticalGap   float64          `toml:"vertical_gap" json:"vertical_gap,omitempty"`
	Padding       float64          `toml:"padding" json:"padding,omitempty"`
	ItemWidth     float64          `toml:"item_width" json:"item_width,omitempty"`
	ItemHeight    float64          `toml:"item_height" json:"item_height,omitempty"`
	AspectRatio   float64          `toml:"aspect_ratio" json:"aspect_ratio,omitempty"`
	TitleHeight   float64          `toml:"title_height" json:"title_height,omitempty"`
	Items         []compose.Item   `toml:"items" json:"items"`
}

// Clone returns a deep copy of d.
func (d Definition) Clone() Definition {
	if d.Header != nil {
		h := *d.Header
		d.Header = &h
	}
	if d.Footer != nil {
		f := *d.Footer
		d.Footer = &f
	}
	if d.Sections != nil {
		sections := make([]Section, len(d.Sections))
		for i, sec := range d.Sections {
			sec.Breakpoints = slices.Clone(sec.Breakpoints)
			sec.Items = slices.Clone(sec.Items)
			sections[i] = sec
		}
		d.Sections = sections
	}
	return d
}

// Validate checks the definition and returns an INVALID_SCREEN error
// describing the first problem found.
func (d Definition) Validate() error {
	if err := flexerrors.ValidateScreenName(d.Name); err != nil {
		return err
	}
	if d.Width < 0 {
		return flexerrors.New(flexerrors.ErrCodeInvalidScreen, "%s: width must not be negative", d.Name)
	}
	for _, b := range []*Banner{d.Header, d.Footer} {
		if b != nil && b.Height < 0 {
			return flexerrors.New(flexerrors.ErrCodeInvalidScreen, "%s: banner height must not be negative", d.Name)
		}
	}
	if len(d.Sections) == 0 {
		return flexerrors.New(flexerrors.ErrCodeInvalidScreen, "%s: at least one section is required", d.Name)
	}

	seen := make(map[string]bool, len(d.Sections))
	for _, s := range d.Sections {
		if err := s.validate(); err != nil {
			return flexerrors.Wrap(flexerrors.ErrCodeInvalidScreen, err, "%s: section %q", d.Name, s.Name)
		}
		if seen[s.Name] {
			return flexerrors.New(flexerrors.ErrCodeInvalidScreen, "%s: duplicate section %q", d.Name, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (s Section) validate() error {
	if err := flexerrors.ValidateScreenName(s.Name); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"min_item_width": s.MinItemWidth,
		"horizontal_gap": s.HorizontalGap,
		"vertical_gap":   s.VerticalGap,
		"padding":        s.Padding,
		"item_width":     s.ItemWidth,
		"item_height":    s.ItemHeight,
		"aspect_ratio":   s.AspectRatio,
		"title_height":   s.TitleHeight,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if s.Columns < 0 || s.Columns > grid.MaxColumns {
		return fmt.Errorf("columns must be between 0 and %d", grid.MaxColumns)
	}
	if err := s.Breakpoints.Validate(); err != nil {
		return err
	}

	switch s.Kind {
	case KindGrid:
		set := 0
		for _, given := range []bool{s.Columns > 0, s.MinItemWidth > 0, len(s.Breakpoints) > 0} {
			if given {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("grid sections need exactly one of columns, min_item_width, breakpoints")
		}
	case KindList:
		if s.Columns > 1 || s.MinItemWidth > 0 || len(s.Breakpoints) > 0 {
			return fmt.Errorf("list sections are single-column")
		}
	case KindStrip:
		if s.ItemWidth <= 0 {
			return fmt.Errorf("strip sections need a positive item_width")
		}
		if len(s.Items) > grid.MaxColumns {
			return fmt.Errorf("strip sections hold at most %d items, got %d", grid.MaxColumns, len(s.Items))
		}
	default:
		return fmt.Errorf("unknown kind %q (must be grid, list, or strip)", s.Kind)
	}

	for _, it := range s.Items {
		if err := flexerrors.ValidateImageURL(it.Image); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes and validates a TOML screen definition.
func Parse(data []byte) (Definition, error) {
	var d Definition
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
	if err != nil {
		return Definition{}, flexerrors.Wrap(flexerrors.ErrCodeInvalidScreen, err, "decode screen definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Definition{}, flexerrors.New(flexerrors.ErrCodeInvalidScreen, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// Load reads a TOML screen definition from disk.
func Load(path string) (Definition, error) {
	if err := flexerrors.ValidatePath(path); err != nil {
		return Definition{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Definition{}, flexerrors.Wrap(flexerrors.ErrCodeFileNotFound, err, "screen file %s", path)
	}
	if err != nil {
		return Definition{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Encode writes d as TOML.
func Encode(d Definition) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//go:embed screens/*.toml
var builtinFS embed.FS

var loadBuiltin = sync.OnceValues(func() ([]Definition, error) {
	entries, err := builtinFS.ReadDir("screens")
	if err != nil {
		return nil, err
	}
	defs := make([]Definition, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("screens", e.Name()))
		if err != nil {
			return nil, err
		}
		d, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		defs = append(defs, d)
	}
	slices.SortFunc(defs, func(a, b Definition) int { return strings.Compare(a.Name, b.Name) })
	return defs, nil
})

// Builtin returns the embedded showcase screens sorted by name. Each call
// returns fresh copies the caller may modify.
func Builtin() ([]Definition, error) {
	defs, err := loadBuiltin()
	if err != nil {
		return nil, flexerrors.Wrap(flexerrors.ErrCodeInternal, err, "load builtin screens")
	}
	out := make([]Definition, len(defs))
	for i, d := range defs {
		out[i] = d.Clone()
	}
	return out, nil
}

// Names returns the names of the built-in screens.
func Names() []string {
	defs, _ := Builtin()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the built-in screen called name.
func Lookup(name string) (Definition, error) {
	if err := flexerrors.ValidateScreenName(name); err != nil {
		return Definition{}, err
	}
	defs, err := Builtin()
	if err != nil {
		return Definition{}, err
	}
	for _, d := range defs {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, flexerrors.New(flexerrors.ErrCodeScreenNotFound, "unknown screen %q (available: %s)", name, strings.Join(Names(), ", "))
}
