// Package screen composes whole showcase screens into presentation trees.
//
// # Definitions
//
// A [Definition] describes one screen: an optional header and footer
// banner and a vertical stack of sections. Each [Section] holds a static
// list of items and the spacing rules for laying them out. Three section
// kinds exist:
//
//   - grid: a wrapping grid sized by Columns, MinItemWidth, or Breakpoints
//   - list: a single-column grid (a feed)
//   - strip: a single row of fixed-width items that may overflow the
//     viewport horizontally (stories, interest tags)
//
// Definitions are TOML documents. The three built-in showcase screens
// (cards, feed, profile) are embedded in the binary; see [Builtin] and
// [Lookup]. Custom screens load with [Load] or [Parse].
//
// # Building
//
// [Builder] turns a definition into a [Node] tree for a given viewport
// width. Sections stack top to bottom; each item becomes a leaf node with
// absolute coordinates. The builder keeps one [compose.Composer] per
// section, so building the same width twice reuses each section's layout,
// while any width change recomputes every section.
//
//	b, err := screen.NewBuilder(def)
//	root, err := b.Build(390)
//
// [compose.Composer]: github.com/matzehuels/flexgrid/pkg/compose.Composer
package screen
