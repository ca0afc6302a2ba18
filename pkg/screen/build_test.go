package screen

import (
	"sync"
	"testing"

	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
)

func mustBuild(t *testing.T, name string, width float64) *Node {
	t.Helper()
	def, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) error: %v", name, err)
	}
	root, err := Build(def, width)
	if err != nil {
		t.Fatalf("Build(%q, %v) error: %v", name, width, err)
	}
	return root
}

func TestBuildCards(t *testing.T) {
	root := mustBuild(t, "cards", 390)

	if root.Kind != NodeScreen || root.Width != 390 {
		t.Fatalf("root = %s width %v", root.Kind, root.Width)
	}
	if got := len(root.Children); got != 3 {
		t.Fatalf("children = %d, want header, section, footer", got)
	}
	header, section, footer := root.Children[0], root.Children[1], root.Children[2]
	if header.Kind != NodeBanner || header.Height != 70 || header.Label != "Flexbox Layout Showcase" {
		t.Errorf("header = %+v", header)
	}
	if section.Y != 70 || section.Height != 720 || section.Columns != 2 {
		t.Errorf("section y=%v height=%v columns=%d, want 70/720/2", section.Y, section.Height, section.Columns)
	}
	if footer.Y != 790 || root.Height != 830 {
		t.Errorf("footer y=%v root height=%v, want 790/830", footer.Y, root.Height)
	}

	tests := []struct {
		index    int
		x, y     float64
		row, col int
	}{
		{0, 10, 80, 0, 0},
		{1, 205, 80, 0, 1},
		{2, 10, 260, 1, 0},
		{7, 205, 620, 3, 1},
	}
	for _, tt := range tests {
		n := section.Children[tt.index]
		if n.X != tt.x || n.Y != tt.y || n.Row != tt.row || n.Column != tt.col {
			t.Errorf("card %d = (%v,%v) r%d c%d, want (%v,%v) r%d c%d",
				tt.index, n.X, n.Y, n.Row, n.Column, tt.x, tt.y, tt.row, tt.col)
		}
		if n.Width != 175 || n.Height != 160 {
			t.Errorf("card %d size = %vx%v, want 175x160", tt.index, n.Width, n.Height)
		}
	}
	if got := section.Children[3].Label; got != "Card 4" {
		t.Errorf("fourth label = %q, want Card 4", got)
	}
	if got := section.Children[0].Image; got != "https://picsum.photos/id/1/200/300" {
		t.Errorf("image passed through as %q", got)
	}
}

func TestBuildFeed(t *testing.T) {
	root := mustBuild(t, "feed", 390)
	stories, posts := root.Children[0], root.Children[1]

	if stories.Layout != KindStrip || stories.ContentWidth != 260 || stories.Scroll {
		t.Errorf("stories layout=%s content=%v scroll=%v, want strip/260/false",
			stories.Layout, stories.ContentWidth, stories.Scroll)
	}
	for i, n := range stories.Children {
		if n.Width != 70 || n.Row != 0 || n.Column != i {
			t.Errorf("story %d = width %v r%d c%d", i, n.Width, n.Row, n.Column)
		}
	}
	if stories.Height != 110 {
		t.Errorf("stories height = %v, want 110", stories.Height)
	}

	if posts.Y != 110 || posts.Columns != 1 || len(posts.Children) != 5 {
		t.Fatalf("posts y=%v columns=%d n=%d", posts.Y, posts.Columns, len(posts.Children))
	}
	last := posts.Children[4]
	if last.Width != 370 || last.Y != 110+10+4*(460+20) {
		t.Errorf("last post = width %v y %v", last.Width, last.Y)
	}
	if last.Caption != "This is a sample post caption for post 5." {
		t.Errorf("caption = %q", last.Caption)
	}
	if root.Height != 110+2400 {
		t.Errorf("root height = %v, want 2510", root.Height)
	}

	// A narrow viewport scrolls the strip instead of wrapping it.
	narrow := mustBuild(t, "feed", 200)
	if s := narrow.Children[0]; !s.Scroll || s.Columns != 3 || s.Children[2].Row != 0 {
		t.Errorf("narrow stories scroll=%v columns=%d", s.Scroll, s.Columns)
	}
}

func TestBuildProfile(t *testing.T) {
	root := mustBuild(t, "profile", 390)
	if got := len(root.Children); got != 4 {
		t.Fatalf("sections = %d, want 4", got)
	}
	profile, stats, interests, posts := root.Children[0], root.Children[1], root.Children[2], root.Children[3]

	if profile.Height != 220 || profile.Children[0].Label != "Riffat Adnan" {
		t.Errorf("profile height=%v label=%q", profile.Height, profile.Children[0].Label)
	}
	if stats.Y != 220 || stats.Children[0].Width != 110 || stats.Height != 90 {
		t.Errorf("stats y=%v item width=%v height=%v", stats.Y, stats.Children[0].Width, stats.Height)
	}
	if interests.TitleHeight != defaultTitleHeight || !interests.Scroll || interests.ContentWidth != 750 {
		t.Errorf("interests title=%v scroll=%v content=%v", interests.TitleHeight, interests.Scroll, interests.ContentWidth)
	}
	if first := interests.Children[0]; first.Y != 310+32+20 || first.X != 20 {
		t.Errorf("first tag at (%v,%v), want (20,362)", first.X, first.Y)
	}
	if posts.Y != 418 || posts.Columns != 2 || posts.Children[0].Width != 169 {
		t.Errorf("posts y=%v columns=%d width=%v", posts.Y, posts.Columns, posts.Children[0].Width)
	}
	if root.Height != 970 {
		t.Errorf("root height = %v, want 970", root.Height)
	}

	wide := mustBuild(t, "profile", 800)
	if got := wide.Children[3].Columns; got != 3 {
		t.Errorf("posts columns at 800 = %d, want 3", got)
	}
}

func TestBuildWidthFallback(t *testing.T) {
	def, _ := Lookup("cards")
	def.Width = 0
	root, err := Build(def, 0)
	if err != nil {
		t.Fatal(err)
	}
	if root.Width != DefaultWidth {
		t.Errorf("width = %v, want %v", root.Width, DefaultWidth)
	}

	def.Width = 500
	root, _ = Build(def, -1)
	if root.Width != 500 {
		t.Errorf("width = %v, want definition width 500", root.Width)
	}
}

func TestBuildDegenerate(t *testing.T) {
	def, _ := Lookup("cards")
	_, err := Build(def, 30)
	if !flexerrors.Is(err, flexerrors.ErrCodeDegenerateLayout) {
		t.Fatalf("Build(30) code = %q, want %q (err %v)", flexerrors.GetCode(err), flexerrors.ErrCodeDegenerateLayout, err)
	}
}

func TestBuildInvalidDefinition(t *testing.T) {
	_, err := NewBuilder(Definition{Name: "x"})
	if !flexerrors.Is(err, flexerrors.ErrCodeInvalidScreen) {
		t.Errorf("NewBuilder() code = %q, want %q", flexerrors.GetCode(err), flexerrors.ErrCodeInvalidScreen)
	}
}

func TestBuilderRecomputesOnWidthChange(t *testing.T) {
	def, _ := Lookup("profile")
	b, err := NewBuilder(def)
	if err != nil {
		t.Fatal(err)
	}
	sections := len(def.Sections)

	if _, err := b.Build(390); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(390); err != nil {
		t.Fatal(err)
	}
	if got := b.Computed(); got != sections {
		t.Errorf("after two builds at one width: computed = %d, want %d", got, sections)
	}

	if _, err := b.Build(420); err != nil {
		t.Fatal(err)
	}
	// Strips size from their items, not the viewport, so only the other
	// sections recompute.
	want := 2*sections - 1
	if got := b.Computed(); got != want {
		t.Errorf("after width change: computed = %d, want %d", got, want)
	}
}

func TestBuilderConcurrent(t *testing.T) {
	def, _ := Lookup("feed")
	b, err := NewBuilder(def)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(w float64) {
			defer wg.Done()
			root, err := b.Build(w)
			if err != nil {
				t.Errorf("Build(%v) error: %v", w, err)
				return
			}
			if root.Width != w {
				t.Errorf("Build(%v) width = %v", w, root.Width)
			}
		}(float64(300 + 10*i))
	}
	wg.Wait()
}

func TestItemIDsStable(t *testing.T) {
	a := mustBuild(t, "cards", 390)
	b := mustBuild(t, "cards", 600)
	la, lb := a.Leaves(), b.Leaves()
	if len(la) != len(lb) {
		t.Fatalf("leaf counts differ: %d vs %d", len(la), len(lb))
	}
	seen := make(map[string]bool)
	for _, n := range a.Children[1].Children {
		if n.ID == "" || seen[n.ID] {
			t.Errorf("item ID %q empty or duplicated", n.ID)
		}
		seen[n.ID] = true
		if b.Find(n.ID) == nil {
			t.Errorf("item %s missing at another width", n.ID)
		}
	}
}
