package grid

import (
	"cmp"
	"math"
	"slices"
)

// Breakpoint switches to Columns once the viewport is at least MinWidth wide.
type Breakpoint struct {
	MinWidth float64 `json:"min_width" toml:"min_width"`
	Columns  int     `json:"columns" toml:"columns"`
}

// Breakpoints is a set of width thresholds. Order does not matter.
type Breakpoints []Breakpoint

// Validate rejects non-finite or negative widths and column counts outside
// [1, MaxColumns].
func (b Breakpoints) Validate() error {
	for _, bp := range b {
		if math.IsNaN(bp.MinWidth) || math.IsInf(bp.MinWidth, 0) {
			return invalid("Breakpoints", "min_width must be finite")
		}
		if bp.MinWidth < 0 {
			return invalid("Breakpoints", "min_width must not be negative, got %g", bp.MinWidth)
		}
		if bp.Columns < 1 || bp.Columns > MaxColumns {
			return invalid("Breakpoints", "columns must be between 1 and %d, got %d", MaxColumns, bp.Columns)
		}
	}
	return nil
}

// Columns returns the column count of the widest breakpoint whose MinWidth
// does not exceed width. With no matching breakpoint it returns 1.
func (b Breakpoints) Columns(width float64) int {
	sorted := slices.SortedFunc(slices.Values(b), func(x, y Breakpoint) int {
		return cmp.Compare(x.MinWidth, y.MinWidth)
	})
	columns := 1
	for _, bp := range sorted {
		if bp.MinWidth > width {
			break
		}
		columns = bp.Columns
	}
	return columns
}

// Apply returns spec with Columns resolved for spec.ContainerWidth.
// MinItemWidth is cleared so the result passes [Spec.Validate].
func (b Breakpoints) Apply(spec Spec) Spec {
	spec.Columns = b.Columns(spec.ContainerWidth)
	spec.MinItemWidth = 0
	return spec
}
