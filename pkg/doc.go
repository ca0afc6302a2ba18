// Package pkg holds the libraries behind flexgrid, a responsive card-grid
// layout engine for mobile screens.
//
// # Overview
//
// A screen is a vertical stack of sections (grids, horizontal strips and
// single-column lists), each holding card-like items. For a viewport width,
// every section resolves a column count and item size, and the items are
// placed row by row:
//
//	screen definition (TOML)
//	         ↓
//	    [screen] package (sections → grid specs)
//	         ↓
//	    [compose] package (items paired with placements)
//	         ↓
//	    [grid] package (columns, item width, positions)
//	         ↓
//	    [render] package (SVG, JSON, text, DOT)
//
// # Quick Start
//
// Compute a raw grid:
//
//	res, err := grid.Compute(8, grid.Spec{
//	    ContainerWidth: 390,
//	    Columns:        2,
//	    HorizontalGap:  20,
//	    VerticalGap:    20,
//	    Padding:        10,
//	}, grid.WithFixedHeight(160))
//
// Build and render a built-in screen:
//
//	def, _ := screen.Lookup("profile")
//	tree, _ := screen.Build(def, 390)
//	svg := render.RenderSVG(tree, render.WithStyle(render.Card{}))
//
// # Main Packages
//
// [grid] - The layout engine. Pure and deterministic; validates the Spec and
// reports malformed input and degenerate layouts as typed errors.
//
// [compose] - Pairs items with placements and memoizes the last layout per
// (count, spec), so re-rendering an unchanged section costs nothing.
//
// [screen] - Screen definitions, the three built-in showcase screens, and
// the presentation tree produced for a viewport width.
//
// [render] - Output sinks: SVG mock-ups (simple and card styles), a
// versioned JSON document, a character-cell sketch for terminals, and
// Graphviz diagrams of the presentation tree.
//
// [pipeline] - Build → render orchestration with caching, shared by the CLI
// and the HTTP API.
//
// [cache] - Cache interface with file, Redis, MongoDB and no-op backends.
//
// [observability] - Hooks for grid, build, render, cache and HTTP events.
//
// [errors] - Coded errors shared across packages.
//
// [buildinfo] - Version information stamped in at link time.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/cache # Redis/MongoDB backends
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/grid
// [compose]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/compose
// [screen]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/screen
// [render]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/buildinfo
package pkg
