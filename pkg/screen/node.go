package screen

// Node kinds.
const (
	NodeScreen  = "screen"
	NodeBanner  = "banner"
	NodeSection = "section"
	NodeItem    = "item"
)

// Node is one element of a presentation tree. Coordinates are absolute,
// measured from the top-left corner of the screen.
type Node struct {
	ID      string `json:"id" bson:"id"`
	Kind    string `json:"kind" bson:"kind"`
	Label   string `json:"label,omitempty" bson:"label,omitempty"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
	Image   string `json:"image,omitempty" bson:"image,omitempty"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Item placement within its section grid.
	Row    int `json:"row,omitempty" bson:"row,omitempty"`
	Column int `json:"column,omitempty" bson:"column,omitempty"`

	// Section layout details.
	Layout       string  `json:"layout,omitempty" bson:"layout,omitempty"`
	Columns      int     `json:"columns,omitempty" bson:"columns,omitempty"`
	TitleHeight  float64 `json:"title_height,omitempty" bson:"title_height,omitempty"`
	ContentWidth float64 `json:"content_width,omitempty" bson:"content_width,omitempty"`
	Scroll       bool    `json:"scroll,omitempty" bson:"scroll,omitempty"`

	Theme    *Theme  `json:"theme,omitempty" bson:"theme,omitempty"`
	Children []*Node `json:"children,omitempty" bson:"children,omitempty"`
}

// Right returns the x coordinate of the node's right edge.
func (n *Node) Right() float64 { return n.X + n.Width }

// Bottom returns the y coordinate of the node's bottom edge.
func (n *Node) Bottom() float64 { return n.Y + n.Height }

// Walk visits n and its descendants depth-first in document order. When fn
// returns false the node's children are skipped.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes of the given kind in the tree. An empty
// kind counts every node.
func (n *Node) Count(kind string) int {
	count := 0
	n.Walk(func(node *Node, _ int) bool {
		if kind == "" || node.Kind == kind {
			count++
		}
		return true
	})
	return count
}

// Leaves returns every node without children, in document order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ int) bool {
		if len(node.Children) == 0 {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Find returns the first node with the given ID, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}
