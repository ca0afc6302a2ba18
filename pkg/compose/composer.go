package compose

import (
	"iter"
	"slices"
	"sync"

	"github.com/matzehuels/flexgrid/pkg/grid"
)

// Composer maps item lists through the grid engine. It is safe for
// concurrent use; the height options given to [New] apply to every layout
// it computes.
type Composer struct {
	opts []grid.Option

	mu       sync.Mutex
	key      layoutKey
	result   grid.Result
	valid    bool
	computed int
}

type layoutKey struct {
	count int
	spec  grid.Spec
}

// New creates a Composer. Options configure item heights.
func New(opts ...grid.Option) *Composer {
	return &Composer{opts: opts}
}

// Compose lays out items according to spec. The returned Sequence holds its
// own copy of items, so later changes to the slice do not leak into it.
// On error no sequence is produced.
func (c *Composer) Compose(items []Item, spec grid.Spec) (Sequence, error) {
	res, err := c.layout(len(items), spec)
	if err != nil {
		return Sequence{}, err
	}
	return Sequence{items: slices.Clone(items), result: res}, nil
}

// Computed returns how many times the composer ran the grid engine.
func (c *Composer) Computed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computed
}

// Reset drops the remembered layout.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.result = grid.Result{}
}

func (c *Composer) layout(count int, spec grid.Spec) (grid.Result, error) {
	key := layoutKey{count: count, spec: spec}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.key == key {
		return c.result, nil
	}

	res, err := grid.Compute(count, spec, c.opts...)
	c.computed++
	if err != nil {
		c.valid = false
		return grid.Result{}, err
	}
	c.key, c.result, c.valid = key, res, true
	return res, nil
}

// Sequence is a finite, restartable stream of (item, placement) pairs in
// input order.
type Sequence struct {
	items  []Item
	result grid.Result
}

// All yields every pair. Ranging over it again starts from the first item.
func (s Sequence) All() iter.Seq2[Item, grid.Placement] {
	return Pairs(s.items, s.result)
}

// Len returns the number of pairs.
func (s Sequence) Len() int { return len(s.items) }

// Result returns the layout behind the sequence.
func (s Sequence) Result() grid.Result { return s.result }

// Pairs zips items with the placements of res. Extra items or placements on
// either side are ignored.
func Pairs(items []Item, res grid.Result) iter.Seq2[Item, grid.Placement] {
	return func(yield func(Item, grid.Placement) bool) {
		n := min(len(items), len(res.Placements))
		for i := 0; i < n; i++ {
			if !yield(items[i], res.Placements[i]) {
				return
			}
		}
	}
}
