package pipeline

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexgrid/pkg/cache"
	"github.com/matzehuels/flexgrid/pkg/compose"
	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/grid"
	"github.com/matzehuels/flexgrid/pkg/observability"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Errorf("default cache = %T, want *cache.NullCache", r.Cache)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	opts := Options{Screen: "cards", Formats: []string{FormatSVG, FormatText}}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Screen != "cards" {
		t.Errorf("Screen = %q, want cards", res.Screen)
	}
	if res.Tree.Width != DefaultWidth {
		t.Errorf("Tree.Width = %v, want %v", res.Tree.Width, DefaultWidth)
	}
	if res.Stats.ItemCount != 8 {
		t.Errorf("ItemCount = %d, want 8", res.Stats.ItemCount)
	}
	// screen + header + footer + section + 8 items
	if res.Stats.NodeCount != 12 {
		t.Errorf("NodeCount = %d, want 12", res.Stats.NodeCount)
	}
	if res.TreeHash == "" {
		t.Error("TreeHash should be set")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", res.Artifacts[FormatSVG])
	}
	if len(res.Artifacts[FormatText]) == 0 {
		t.Error("txt artifact is empty")
	}
	if res.CacheInfo.BuildHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", res.CacheInfo)
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.BuildHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", again.CacheInfo)
	}
	if again.TreeHash != res.TreeHash {
		t.Error("cached tree should hash identically")
	}
	if !bytes.Equal(again.Artifacts[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if fresh.CacheInfo.BuildHit || fresh.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass cache: %+v", fresh.CacheInfo)
	}
}

func TestExecuteErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, log.New(io.Discard))

	tests := []struct {
		name string
		opts Options
		want flexerrors.Code
	}{
		{"unknown screen", Options{Screen: "nope"}, flexerrors.ErrCodeScreenNotFound},
		{"bad format", Options{Screen: "cards", Formats: []string{"pdf"}}, flexerrors.ErrCodeInvalidFormat},
		{"bad style", Options{Screen: "cards", Style: "fancy"}, flexerrors.ErrCodeInvalidStyle},
		{"too narrow", Options{Screen: "cards", Width: 30}, flexerrors.ErrCodeDegenerateLayout},
		{"text too wide", Options{Screen: "cards", Formats: []string{FormatText}, TextColumns: 100000}, flexerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if got := flexerrors.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestExecuteJSONKeyedByStyle(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	card, err := r.Execute(ctx, Options{Screen: "cards", Formats: []string{FormatJSON}, Style: "card"})
	if err != nil {
		t.Fatalf("Execute(card): %v", err)
	}
	if !bytes.Contains(card.Artifacts[FormatJSON], []byte(`"style": "card"`)) {
		t.Fatalf("card json = %.120q", card.Artifacts[FormatJSON])
	}

	simple, err := r.Execute(ctx, Options{Screen: "cards", Formats: []string{FormatJSON}, Style: "simple"})
	if err != nil {
		t.Fatalf("Execute(simple): %v", err)
	}
	if simple.CacheInfo.RenderHit {
		t.Error("a different style should miss the artifact cache")
	}
	if !bytes.Contains(simple.Artifacts[FormatJSON], []byte(`"style": "simple"`)) {
		t.Errorf("simple json = %.120q", simple.Artifacts[FormatJSON])
	}

	again, err := r.Execute(ctx, Options{Screen: "cards", Formats: []string{FormatJSON}, Style: "card"})
	if err != nil {
		t.Fatalf("Execute(card) again: %v", err)
	}
	if !again.CacheInfo.RenderHit || !bytes.Equal(again.Artifacts[FormatJSON], card.Artifacts[FormatJSON]) {
		t.Error("repeating the card request should hit its own cached document")
	}
}

func TestBuildWithDefinition(t *testing.T) {
	def := screen.Definition{
		Name: "mini",
		Sections: []screen.Section{{
			Name:       "grid",
			Kind:       screen.KindGrid,
			Columns:    3,
			ItemHeight: 40,
			Items:      []compose.Item{{Label: "a"}, {Label: "b"}, {Label: "c"}, {Label: "d"}},
		}},
	}
	r := newTestRunner(t)

	tree, hit, err := r.BuildWithCacheInfo(context.Background(), Options{Definition: &def, Width: 300})
	if err != nil {
		t.Fatalf("BuildWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first build should miss")
	}
	if tree.Width != 300 {
		t.Errorf("Width = %v, want 300", tree.Width)
	}
	if got := len(tree.Leaves()); got != 4 {
		t.Errorf("leaves = %d, want 4", got)
	}
	// 4 items in 3 columns: two rows of 40
	if tree.Height != 80 {
		t.Errorf("Height = %v, want 80", tree.Height)
	}
}

func TestBuildReusesBuilder(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, log.New(io.Discard))

	for _, w := range []float64{390, 500, 390} {
		if _, err := r.Build(ctx, Options{Screen: "profile", Width: w}); err != nil {
			t.Fatalf("Build(%v): %v", w, err)
		}
	}
	if len(r.builders) != 1 {
		t.Errorf("builders = %d, want 1", len(r.builders))
	}
}

func TestGridWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	opts := GridOptions{
		ItemCount:  5,
		Spec:       grid.Spec{ContainerWidth: 390, Columns: 2, HorizontalGap: 10, VerticalGap: 10, Padding: 10},
		ItemHeight: 100,
	}
	res, hit, err := r.GridWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("GridWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first grid should miss")
	}
	if res.Columns != 2 || res.Rows != 3 || len(res.Placements) != 5 {
		t.Fatalf("result = %d cols, %d rows, %d placements", res.Columns, res.Rows, len(res.Placements))
	}

	cached, hit, err := r.GridWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("cached GridWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("second grid should hit")
	}
	if cached.Height != res.Height || cached.ItemWidth != res.ItemWidth {
		t.Errorf("cached = %+v, want %+v", cached, res)
	}
	for i, p := range cached.Placements {
		if p != res.Placements[i] {
			t.Errorf("placement %d = %+v, want %+v", i, p, res.Placements[i])
		}
	}

	_, err = r.Grid(ctx, GridOptions{ItemCount: 1, Spec: grid.Spec{ContainerWidth: 20, Columns: 4, Padding: 10}})
	if !flexerrors.Is(err, flexerrors.ErrCodeDegenerateLayout) {
		t.Errorf("err = %v, want DEGENERATE_LAYOUT", err)
	}
}

func TestRenderFormats(t *testing.T) {
	tree, err := screen.Build(mustLookup(t, "feed"), 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	opts := Options{Formats: []string{FormatJSON, FormatDOT, FormatText}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender: %v", err)
	}

	artifacts, err := Render(tree, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatDOT], []byte("digraph")) {
		t.Errorf("dot artifact = %.40q", artifacts[FormatDOT])
	}
	if !bytes.Contains(artifacts[FormatJSON], []byte(`"version"`)) {
		t.Errorf("json artifact = %.60q", artifacts[FormatJSON])
	}
	if len(artifacts) != 3 {
		t.Errorf("artifacts = %d, want 3", len(artifacts))
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu           sync.Mutex
	hits, misses map[string]int
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[keyType]++
}

func (h *countingCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses[keyType]++
}

func TestRunnerEmitsCacheHooks(t *testing.T) {
	hooks := &countingCacheHooks{hits: map[string]int{}, misses: map[string]int{}}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	r := newTestRunner(t)
	opts := Options{Screen: "cards"}
	for range 2 {
		if _, err := r.Execute(ctx, opts); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	if hooks.misses[keyTypeScreen] != 1 || hooks.hits[keyTypeScreen] != 1 {
		t.Errorf("screen hooks: %d misses, %d hits", hooks.misses[keyTypeScreen], hooks.hits[keyTypeScreen])
	}
	if hooks.misses[keyTypeArtifact] != 1 || hooks.hits[keyTypeArtifact] != 1 {
		t.Errorf("artifact hooks: %d misses, %d hits", hooks.misses[keyTypeArtifact], hooks.hits[keyTypeArtifact])
	}
}

func mustLookup(t *testing.T, name string) screen.Definition {
	t.Helper()
	def, err := screen.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return def
}
