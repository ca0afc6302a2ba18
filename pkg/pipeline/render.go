package pipeline

import (
	"fmt"

	"github.com/matzehuels/flexgrid/pkg/render"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

// Render generates output artifacts in the requested formats. Options must
// already carry render defaults.
func Render(tree *screen.Node, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	dotOnce := func() string {
		if dot == "" {
			dot = render.ToDOT(tree, render.DOTOptions{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = renderSVG(tree, opts)
		case FormatJSON:
			data, err = render.RenderJSON(tree, render.WithJSONStyle(opts.Style))
		case FormatText:
			data = []byte(render.RenderText(tree, render.TextOptions{Columns: opts.TextColumns}))
		case FormatDOT:
			data = []byte(dotOnce())
		case FormatTreeSVG:
			data, err = render.TreeSVG(dotOnce())
		case FormatTreePNG:
			data, err = render.TreePNG(dotOnce())
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(tree *screen.Node, opts Options) ([]byte, error) {
	style, err := render.StyleByName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []render.SVGOption{render.WithStyle(style)}
	if opts.Images {
		svgOpts = append(svgOpts, render.WithImages())
	}
	return render.RenderSVG(tree, svgOpts...), nil
}
