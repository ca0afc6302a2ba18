package cache

import "github.com/matzehuels/flexgrid/pkg/grid"

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// GridKey identifies a raw grid computation.
	GridKey(itemCount int, spec grid.Spec, opts GridKeyOpts) string
	// ScreenKey identifies a screen tree built from a definition.
	ScreenKey(definitionHash string, opts ScreenKeyOpts) string
	// ArtifactKey identifies one rendered output of a screen tree.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// GridKeyOpts holds the height inputs of a grid computation.
type GridKeyOpts struct {
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
	ItemHeight  float64 `json:"item_height,omitempty"`
}

// ScreenKeyOpts holds the inputs of a screen build besides the definition.
type ScreenKeyOpts struct {
	Width float64 `json:"width"`
}

// ArtifactKeyOpts holds the rendering inputs of an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Style    string `json:"style,omitempty"`
	Images   bool   `json:"images,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	Columns  int    `json:"columns,omitempty"`
}

// keyVersion changes whenever cached encodings change.
const keyVersion = 1

// DefaultKeyer hashes all inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GridKey returns "grid:<sha256>".
func (DefaultKeyer) GridKey(itemCount int, spec grid.Spec, opts GridKeyOpts) string {
	return hashKey("grid", keyVersion, itemCount, spec, opts)
}

// ScreenKey returns "screen:<sha256>".
func (DefaultKeyer) ScreenKey(definitionHash string, opts ScreenKeyOpts) string {
	return hashKey("screen", keyVersion, definitionHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, treeHash, opts)
}

var _ Keyer = DefaultKeyer{}
