package render

import (
	"encoding/json"

	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

// jsonVersion is bumped whenever the document shape changes.
const jsonVersion = 1

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonDocument)

// WithJSONStyle records the style the tree is meant to be drawn with.
func WithJSONStyle(s string) JSONOption { return func(d *jsonDocument) { d.Style = s } }

type jsonDocument struct {
	Version int          `json:"version"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Style   string       `json:"style,omitempty"`
	Screen  *screen.Node `json:"screen"`
}

// RenderJSON exports the tree and its resolved geometry as a pretty-printed
// JSON document.
func RenderJSON(root *screen.Node, opts ...JSONOption) ([]byte, error) {
	doc := jsonDocument{
		Version: jsonVersion,
		Width:   root.Width,
		Height:  root.Height,
		Screen:  root,
	}
	for _, opt := range opts {
		opt(&doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ParseJSON reads a document written by [RenderJSON].
func ParseJSON(data []byte) (*screen.Node, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, flexerrors.Wrap(flexerrors.ErrCodeInvalidInput, err, "decode layout document")
	}
	if doc.Version != jsonVersion {
		return nil, flexerrors.New(flexerrors.ErrCodeUnsupported, "layout document version %d (want %d)", doc.Version, jsonVersion)
	}
	if doc.Screen == nil || doc.Screen.Kind != screen.NodeScreen {
		return nil, flexerrors.New(flexerrors.ErrCodeInvalidInput, "layout document has no screen")
	}
	return doc.Screen, nil
}
