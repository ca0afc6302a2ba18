package grid

import "math"

// DefaultAspectRatio is the item height/width ratio used when no height
// option is given. Cards are square unless told otherwise.
const DefaultAspectRatio = 1.0

// tolerance absorbs floating-point drift when checking width invariants.
const tolerance = 1e-9

// Placement is the resolved geometry of one item.
type Placement struct {
	Index  int     `json:"index" bson:"index"`
	Row    int     `json:"row" bson:"row"`
	Column int     `json:"column" bson:"column"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
}

// Right returns the X coordinate of the placement's right edge.
func (p Placement) Right() float64 { return p.X + p.Width }

// Bottom returns the Y coordinate of the placement's bottom edge.
func (p Placement) Bottom() float64 { return p.Y + p.Height }

// Result is the layout of a whole grid.
type Result struct {
	Spec       Spec        `json:"spec" bson:"spec"`
	Columns    int         `json:"columns" bson:"columns"`
	Rows       int         `json:"rows" bson:"rows"`
	ItemWidth  float64     `json:"item_width" bson:"item_width"`
	Width      float64     `json:"width" bson:"width"`
	Height     float64     `json:"height" bson:"height"`
	Placements []Placement `json:"placements" bson:"placements"`
}

// ContentWidth returns the horizontal space the columns, gaps, and padding
// actually occupy. It never exceeds Width beyond rounding.
func (r Result) ContentWidth() float64 {
	if r.Columns == 0 {
		return 0
	}
	return 2*r.Spec.Padding + float64(r.Columns)*r.ItemWidth + float64(r.Columns-1)*r.Spec.HorizontalGap
}

// Fits reports whether the content stays within the container width.
func (r Result) Fits() bool {
	return r.ContentWidth() <= r.Width+tolerance*math.Max(1, r.Width)
}

// Row returns the placements of row n, in column order.
func (r Result) Row(n int) []Placement {
	if n < 0 || n >= r.Rows || r.Columns <= 0 {
		return nil
	}
	if n > len(r.Placements)/r.Columns {
		return nil
	}
	start := n * r.Columns
	if start >= len(r.Placements) {
		return nil
	}
	end := start + min(r.Columns, len(r.Placements)-start)
	return r.Placements[start:end]
}

// Option configures item heights for [Compute].
type Option func(*config)

type config struct {
	height func(index int, width float64) float64
}

// WithAspectRatio sizes every item as width*ratio. Non-positive or
// non-finite ratios are ignored.
func WithAspectRatio(ratio float64) Option {
	return func(c *config) {
		if ratio > 0 && !math.IsInf(ratio, 0) {
			c.height = func(_ int, w float64) float64 { return w * ratio }
		}
	}
}

// WithItemHeight supplies a height per item. The function receives the item
// index and the resolved item width. Negative or NaN heights count as zero.
func WithItemHeight(fn func(index int, width float64) float64) Option {
	return func(c *config) {
		if fn != nil {
			c.height = fn
		}
	}
}

// WithFixedHeight sizes every item to h.
func WithFixedHeight(h float64) Option {
	return WithItemHeight(func(int, float64) float64 { return h })
}

// Compute lays out itemCount items according to spec.
//
// It returns an [*InvalidSpecError] for malformed input (including a
// negative itemCount) and a [*DegenerateLayoutError] when the resolved item
// width is not positive. An itemCount of zero yields an empty, valid result.
func Compute(itemCount int, spec Spec, opts ...Option) (Result, error) {
	if itemCount < 0 {
		return Result{}, invalid("itemCount", "must not be negative, got %d", itemCount)
	}
	columns, err := spec.ResolveColumns()
	if err != nil {
		return Result{}, err
	}
	itemWidth := spec.itemWidth(columns)
	if itemWidth <= 0 || math.IsNaN(itemWidth) {
		return Result{}, &DegenerateLayoutError{Columns: columns, ItemWidth: itemWidth}
	}

	cfg := config{height: func(_ int, w float64) float64 { return w * DefaultAspectRatio }}
	for _, opt := range opts {
		opt(&cfg)
	}

	rows := itemCount / columns
	if itemCount%columns != 0 {
		rows++
	}
	placements := make([]Placement, itemCount)
	y := spec.Padding
	for row := 0; row < rows; row++ {
		rowHeight := 0.0
		for col := 0; col < columns; col++ {
			i := row*columns + col
			if i >= itemCount {
				break
			}
			h := cfg.height(i, itemWidth)
			if !(h > 0) || math.IsInf(h, 0) {
				h = 0
			}
			placements[i] = Placement{
				Index:  i,
				Row:    row,
				Column: col,
				Width:  itemWidth,
				Height: h,
				X:      spec.Padding + float64(col)*(itemWidth+spec.HorizontalGap),
				Y:      y,
			}
			rowHeight = max(rowHeight, h)
		}
		y += rowHeight
		if row < rows-1 {
			y += spec.VerticalGap
		}
	}

	return Result{
		Spec:       spec,
		Columns:    columns,
		Rows:       rows,
		ItemWidth:  itemWidth,
		Width:      spec.ContainerWidth,
		Height:     y + spec.Padding,
		Placements: placements,
	}, nil
}
