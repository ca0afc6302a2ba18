// Package grid computes responsive, wrapping grid layouts.
//
// # Overview
//
// Given an item count and a [Spec], [Compute] resolves a column count,
// a uniform item width, and the position of every item. The result is a
// [Result] holding one [Placement] per item, in input order:
//
//	res, err := grid.Compute(8, grid.Spec{
//	    ContainerWidth: 340,
//	    Columns:        2,
//	    HorizontalGap:  20,
//	    VerticalGap:    20,
//	})
//
// # Column Resolution
//
// A spec names either a fixed column count ([Spec.Columns]) or a minimum
// item width ([Spec.MinItemWidth]), never both. With a minimum width, the
// engine fits as many columns as the container allows:
//
//	columns = max(1, floor((width - 2*padding + hgap) / (minItemWidth + hgap)))
//
// Every column shares the same width:
//
//	itemWidth = (width - 2*padding - (columns-1)*hgap) / columns
//
// # Row-Major Fill
//
// Items fill columns left to right before advancing to the next row. Item
// i lands in row i/columns and column i%columns. All items in a row share
// the same Y; a row is as tall as its tallest item. Item heights come from
// [WithItemHeight] or [WithAspectRatio] (default [DefaultAspectRatio]).
//
// # Breakpoints
//
// [Breakpoints] map viewport widths to column counts, for layouts that jump
// between fixed column counts rather than deriving them from a minimum width.
//
// # Errors
//
// Malformed specs fail with [*InvalidSpecError]; specs that leave no room
// for an item fail with [*DegenerateLayoutError]. Both carry codes from
// pkg/errors. No partial results are returned on failure.
//
// Compute is pure: it holds no state between calls and is safe for
// concurrent use.
package grid
