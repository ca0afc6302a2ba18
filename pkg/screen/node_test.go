package screen

import "testing"

func sampleTree() *Node {
	return &Node{ID: "root", Kind: NodeScreen, Children: []*Node{
		{ID: "h", Kind: NodeBanner},
		{ID: "s", Kind: NodeSection, Children: []*Node{
			{ID: "a", Kind: NodeItem},
			{ID: "b", Kind: NodeItem},
		}},
		{ID: "empty", Kind: NodeSection},
	}}
}

func TestNodeCount(t *testing.T) {
	root := sampleTree()
	tests := []struct {
		kind string
		want int
	}{
		{"", 6},
		{NodeScreen, 1},
		{NodeSection, 2},
		{NodeItem, 2},
		{"nope", 0},
	}
	for _, tt := range tests {
		if got := root.Count(tt.kind); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestNodeWalkOrderAndSkip(t *testing.T) {
	var ids []string
	var depths []int
	sampleTree().Walk(func(n *Node, depth int) bool {
		ids = append(ids, n.ID)
		depths = append(depths, depth)
		return n.ID != "s"
	})
	want := []string{"root", "h", "s", "empty"}
	if len(ids) != len(want) {
		t.Fatalf("visited %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, ids[i], want[i])
		}
	}
	if depths[0] != 0 || depths[1] != 1 {
		t.Errorf("depths = %v", depths)
	}
}

func TestNodeLeavesAndFind(t *testing.T) {
	root := sampleTree()
	var ids []string
	for _, n := range root.Leaves() {
		ids = append(ids, n.ID)
	}
	if got := len(ids); got != 4 || ids[0] != "h" || ids[3] != "empty" {
		t.Errorf("Leaves() = %v", ids)
	}
	if n := root.Find("b"); n == nil || n.Kind != NodeItem {
		t.Errorf("Find(b) = %+v", n)
	}
	if n := root.Find("zzz"); n != nil {
		t.Errorf("Find(zzz) = %+v, want nil", n)
	}
	var nilNode *Node
	if nilNode.Count("") != 0 {
		t.Error("nil tree should count zero nodes")
	}
}
