// Package compose pairs domain items with grid placements.
//
// A [Composer] takes an ordered list of [Item] values and a [grid.Spec] and
// yields a [Sequence] of (item, placement) pairs for a rendering surface.
// The composer remembers the last layout it computed, keyed by the item
// count and the Spec; changing either recomputes the whole layout. There is
// no partial recompute, which keeps the memo trivially correct for the
// small, bounded collections a screen holds.
//
// Items carry an opaque ID plus display payload. Image references are
// passed through untouched: fetching, caching, and fallback for remote
// images belong to whatever draws the sequence.
//
//	c := compose.New(grid.WithAspectRatio(1.25))
//	seq, err := c.Compose(items, grid.Spec{ContainerWidth: 390, Columns: 2})
//	for item, p := range seq.All() {
//	    draw(item.Image, p.X, p.Y, p.Width, p.Height)
//	}
package compose
