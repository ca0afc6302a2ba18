package grid

import "math"

// MaxColumns bounds the column count of any layout. Derived column counts
// above it are clamped; explicit ones are rejected.
const MaxColumns = 10000

// Spec configures a grid layout. Exactly one of Columns and MinItemWidth
// must be set; a zero value means "not given".
type Spec struct {
	ContainerWidth float64 `json:"container_width" toml:"container_width"`
	MinItemWidth   float64 `json:"min_item_width,omitempty" toml:"min_item_width"`
	Columns        int     `json:"columns,omitempty" toml:"columns"`
	HorizontalGap  float64 `json:"horizontal_gap,omitempty" toml:"horizontal_gap"`
	VerticalGap    float64 `json:"vertical_gap,omitempty" toml:"vertical_gap"`
	Padding        float64 `json:"padding,omitempty" toml:"padding"`
}

// Validate reports the first malformed field as an [*InvalidSpecError].
func (s Spec) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"ContainerWidth", s.ContainerWidth},
		{"MinItemWidth", s.MinItemWidth},
		{"HorizontalGap", s.HorizontalGap},
		{"VerticalGap", s.VerticalGap},
		{"Padding", s.Padding},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid(f.name, "must be finite")
		}
		if f.value < 0 {
			return invalid(f.name, "must not be negative, got %g", f.value)
		}
	}
	if s.Columns < 0 {
		return invalid("Columns", "must not be negative, got %d", s.Columns)
	}
	if s.Columns > MaxColumns {
		return invalid("Columns", "must be at most %d, got %d", MaxColumns, s.Columns)
	}
	if s.ContainerWidth <= 0 {
		return invalid("ContainerWidth", "must be positive, got %g", s.ContainerWidth)
	}

	hasColumns, hasMin := s.Columns > 0, s.MinItemWidth > 0
	switch {
	case hasColumns && hasMin:
		return invalid("Columns", "cannot be combined with MinItemWidth")
	case !hasColumns && !hasMin:
		return invalid("Columns", "either Columns or MinItemWidth is required")
	}
	return nil
}

// ResolveColumns validates the Spec and returns the effective column count,
// which is always at least 1.
func (s Spec) ResolveColumns() (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.Columns > 0 {
		return s.Columns, nil
	}
	fit := math.Floor((s.ContainerWidth - 2*s.Padding + s.HorizontalGap) / (s.MinItemWidth + s.HorizontalGap))
	switch {
	case !(fit >= 1):
		return 1, nil
	case fit > MaxColumns:
		return MaxColumns, nil
	}
	return int(fit), nil
}

// WithContainerWidth returns a copy of s sized for a new container width.
func (s Spec) WithContainerWidth(w float64) Spec {
	s.ContainerWidth = w
	return s
}

// itemWidth returns the shared column width for the given column count.
func (s Spec) itemWidth(columns int) float64 {
	return (s.ContainerWidth - 2*s.Padding - float64(columns-1)*s.HorizontalGap) / float64(columns)
}
