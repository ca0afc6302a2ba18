// Package pipeline runs the build → render pipeline shared by the CLI and
// the HTTP API.
//
// Centralizing the stages here keeps defaults, validation, and caching
// identical across entry points.
//
// # Stages
//
//  1. Grid: compute a raw grid for an item count and spec
//  2. Build: turn a screen definition into a presentation tree for a width
//  3. Render: produce output artifacts (SVG, JSON, text, DOT, tree images)
//
// Each stage can run on its own or through [Runner.Execute]:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Screen:  "profile",
//	    Width:   390,
//	    Formats: []string{"svg", "txt"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexgrid/pkg/cache"
	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/grid"
	"github.com/matzehuels/flexgrid/pkg/render"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the viewport width in points.
	DefaultWidth = screen.DefaultWidth

	// DefaultStyle is the default SVG style.
	DefaultStyle = render.StyleCard

	// DefaultTextColumns is the width of text sketches in characters.
	DefaultTextColumns = 80

	// MaxTextColumns bounds the width of text sketches.
	MaxTextColumns = 1000

	// MaxWidth bounds requested viewport widths.
	MaxWidth = 10000.0

	// MaxItemCount bounds raw grid requests.
	MaxItemCount = 100000
)

// Format constants for output formats.
const (
	FormatSVG     = "svg"  // screen mock-up
	FormatJSON    = "json" // presentation tree with geometry
	FormatText    = "txt"  // character-cell sketch
	FormatDOT     = "dot"  // tree structure as Graphviz DOT
	FormatTreeSVG = "tree" // tree structure rendered to SVG
	FormatTreePNG = "png"  // tree structure rendered to PNG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:     true,
	FormatJSON:    true,
	FormatText:    true,
	FormatDOT:     true,
	FormatTreeSVG: true,
	FormatTreePNG: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	render.StyleSimple: true,
	render.StyleCard:   true,
}

// FormatNames returns the supported formats, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatTreeSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatTreePNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a screen build and render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Screen  string  `json:"screen,omitempty"` // built-in screen name
	Width   float64 `json:"width,omitempty"`
	Refresh bool    `json:"refresh,omitempty"` // ignore cached entries

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Images      bool     `json:"images,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // geometry in DOT labels
	TextColumns int      `json:"text_columns,omitempty"`

	// Runtime options (not serialized)
	Definition *screen.Definition `json:"-"` // takes precedence over Screen
	Logger     *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// GridOptions configures a raw grid computation.
type GridOptions struct {
	ItemCount   int       `json:"item_count"`
	Spec        grid.Spec `json:"spec"`
	AspectRatio float64   `json:"aspect_ratio,omitempty"`
	ItemHeight  float64   `json:"item_height,omitempty"`
	Refresh     bool      `json:"refresh,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Screen is the name of the built screen.
	Screen string

	// Tree is the presentation tree.
	Tree *screen.Node

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	ItemCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the tree came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return flexerrors.New(flexerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return flexerrors.New(flexerrors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, card)", style)
	}
	return nil
}

// ValidateWidth checks a requested viewport width. Zero means "use the
// default".
func ValidateWidth(width float64) error {
	if math.IsNaN(width) || width < 0 || width > MaxWidth {
		return flexerrors.New(flexerrors.ErrCodeInvalidInput, "width must be between 0 and %g, got %g", MaxWidth, width)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the screen source and width.
func (o *Options) ValidateForBuild() error {
	if o.Definition == nil {
		if o.Screen == "" {
			return flexerrors.New(flexerrors.ErrCodeInvalidInput, "screen or definition is required")
		}
		if err := flexerrors.ValidateScreenName(o.Screen); err != nil {
			return err
		}
	}
	if err := ValidateWidth(o.Width); err != nil {
		return err
	}
	o.SetBuildDefaults()
	return nil
}

// SetBuildDefaults sets default values for screen builds.
func (o *Options) SetBuildDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.TextColumns <= 0 {
		o.TextColumns = DefaultTextColumns
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.TextColumns > MaxTextColumns {
		return flexerrors.New(flexerrors.ErrCodeInvalidInput, "text columns must be at most %d, got %d", MaxTextColumns, o.TextColumns)
	}
	return ValidateStyle(o.Style)
}

// ScreenKeyOpts returns cache key options for screen builds.
func (o *Options) ScreenKeyOpts(width float64) cache.ScreenKeyOpts {
	return cache.ScreenKeyOpts{Width: width}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Only
// the options that affect the given format are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Style = o.Style
		k.Images = o.Images
	case FormatJSON:
		k.Style = o.Style
	case FormatText:
		k.Columns = o.TextColumns
	case FormatDOT, FormatTreeSVG, FormatTreePNG:
		k.Detailed = o.Detailed
	}
	return k
}

// Validate checks a raw grid request.
func (o *GridOptions) Validate() error {
	if o.ItemCount > MaxItemCount {
		return flexerrors.New(flexerrors.ErrCodeInvalidInput, "item_count must be at most %d, got %d", MaxItemCount, o.ItemCount)
	}
	if math.IsNaN(o.AspectRatio) || math.IsInf(o.AspectRatio, 0) || o.AspectRatio < 0 {
		return flexerrors.New(flexerrors.ErrCodeInvalidInput, "aspect_ratio must be a non-negative number")
	}
	if math.IsNaN(o.ItemHeight) || math.IsInf(o.ItemHeight, 0) || o.ItemHeight < 0 {
		return flexerrors.New(flexerrors.ErrCodeInvalidInput, "item_height must be a non-negative number")
	}
	if o.ItemCount < 0 {
		_, err := grid.Compute(o.ItemCount, o.Spec)
		return err
	}
	return o.Spec.Validate()
}

// HeightOption returns the grid option matching the request. A fixed item
// height wins over an aspect ratio.
func (o *GridOptions) HeightOption() grid.Option {
	if o.ItemHeight > 0 {
		return grid.WithFixedHeight(o.ItemHeight)
	}
	return grid.WithAspectRatio(o.AspectRatio)
}

// KeyOpts returns cache key options for the request.
func (o *GridOptions) KeyOpts() cache.GridKeyOpts {
	return cache.GridKeyOpts{AspectRatio: o.AspectRatio, ItemHeight: o.ItemHeight}
}
