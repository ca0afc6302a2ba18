// Package render turns presentation trees into output formats.
//
// # Sinks
//
// Every sink takes the root [screen.Node] produced by a screen builder:
//
//   - [RenderSVG]: a vector mock-up of the screen, in the [Simple] or
//     [Card] style
//   - [RenderJSON]: the tree with resolved geometry, readable again with
//     [ParseJSON]
//   - [RenderText]: a character-cell sketch for terminals
//   - [ToDOT]: the tree structure as Graphviz DOT, turned into images by
//     [TreeSVG] and [TreePNG]
//
// Sinks never fetch images. With [WithImages], SVG output references each
// item's image URL as given; without it, items render as placeholders.
//
//	root, _ := screen.Build(def, 390)
//	svg := render.RenderSVG(root, render.WithStyle(render.Card{}))
//
// [screen.Node]: github.com/matzehuels/flexgrid/pkg/screen.Node
package render
