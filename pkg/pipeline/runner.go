package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/flexgrid/pkg/cache"
	"github.com/matzehuels/flexgrid/pkg/grid"
	"github.com/matzehuels/flexgrid/pkg/observability"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

// Cache key types reported to observability hooks.
const (
	keyTypeGrid     = "grid"
	keyTypeScreen   = "screen"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// Besides the cache, a Runner keeps one screen builder per distinct
// definition so repeated builds of the same screen reuse section layouts.
// Multiple goroutines can safely share a Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu       sync.Mutex
	builders map[string]*screen.Builder
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		builders: make(map[string]*screen.Builder),
	}
}

// Execute runs the build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	buildStart := time.Now()
	tree, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Screen = tree.ID
	result.Tree = tree
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = tree.Count("")
	result.Stats.ItemCount = tree.Count(screen.NodeItem)
	result.CacheInfo.BuildHit = buildHit
	result.TreeHash, _ = treeHash(tree)

	r.Logger.Info("built screen",
		"screen", tree.ID,
		"width", tree.Width,
		"items", result.Stats.ItemCount,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// =============================================================================
// Grid
// =============================================================================

// GridWithCacheInfo computes a raw grid with caching and returns cache hit
// info.
func (r *Runner) GridWithCacheInfo(ctx context.Context, opts GridOptions) (grid.Result, bool, error) {
	if err := opts.Validate(); err != nil {
		return grid.Result{}, false, err
	}
	key := r.Keyer.GridKey(opts.ItemCount, opts.Spec, opts.KeyOpts())

	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyTypeGrid, key); hit {
			var cached grid.Result
			if err := bson.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
			r.Logger.Debug("discarding undecodable cache entry", "key", key)
		}
	}

	hooks := observability.Layout()
	hooks.OnGridStart(ctx, opts.ItemCount)
	start := time.Now()
	res, err := grid.Compute(opts.ItemCount, opts.Spec, opts.HeightOption())
	hooks.OnGridComplete(ctx, opts.ItemCount, res.Columns, time.Since(start), err)
	if err != nil {
		return grid.Result{}, false, err
	}

	if data, err := bson.Marshal(res); err == nil {
		r.cacheSet(ctx, keyTypeGrid, key, data, cache.TTLGrid)
	}
	return res, false, nil
}

// Grid is a convenience wrapper that calls GridWithCacheInfo and discards the cache hit info.
func (r *Runner) Grid(ctx context.Context, opts GridOptions) (grid.Result, error) {
	res, _, err := r.GridWithCacheInfo(ctx, opts)
	return res, err
}

// =============================================================================
// Build
// =============================================================================

// BuildWithCacheInfo builds the screen tree with caching and returns cache
// hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*screen.Node, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	def, err := resolveDefinition(opts)
	if err != nil {
		return nil, false, err
	}
	defData, err := json.Marshal(def)
	if err != nil {
		return nil, false, fmt.Errorf("serialize definition for cache key: %w", err)
	}
	defHash := cache.Hash(defData)

	width := opts.Width
	if width <= 0 {
		width = def.Width
	}
	if width <= 0 {
		width = DefaultWidth
	}
	key := r.Keyer.ScreenKey(defHash, opts.ScreenKeyOpts(width))

	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyTypeScreen, key); hit {
			var cached screen.Node
			if err := bson.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
			opts.Logger.Debug("discarding undecodable cache entry", "key", key)
		}
	}

	builder, err := r.builder(defHash, def)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Layout()
	hooks.OnBuildStart(ctx, def.Name, width)
	start := time.Now()
	tree, err := builder.Build(width)
	nodes := 0
	if tree != nil {
		nodes = tree.Count("")
	}
	hooks.OnBuildComplete(ctx, def.Name, width, nodes, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := bson.Marshal(tree); err == nil {
		r.cacheSet(ctx, keyTypeScreen, key, data, cache.TTLScreen)
	}
	return tree, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*screen.Node, error) {
	tree, _, err := r.BuildWithCacheInfo(ctx, opts)
	return tree, err
}

func resolveDefinition(opts Options) (screen.Definition, error) {
	if opts.Definition != nil {
		return *opts.Definition, nil
	}
	return screen.Lookup(opts.Screen)
}

// builder returns the builder for a definition, creating it on first use.
func (r *Runner) builder(defHash string, def screen.Definition) (*screen.Builder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.builders[defHash]; ok {
		return b, nil
	}
	b, err := screen.NewBuilder(def)
	if err != nil {
		return nil, err
	}
	if r.builders == nil {
		r.builders = make(map[string]*screen.Builder)
	}
	r.builders[defHash] = b
	return b, nil
}

// =============================================================================
// Render
// =============================================================================

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tree *screen.Node, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hash, err := treeHash(tree)
	if err != nil {
		return nil, false, fmt.Errorf("serialize tree for cache key: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit := r.cacheGet(ctx, keyTypeArtifact, key)
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(tree, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, keyTypeArtifact, key, data, cache.TTLArtifact)
	}
	opts.Logger.Debug("rendered artifacts", "formats", len(rendered), "duration", time.Since(start))
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, tree *screen.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tree, opts)
	return artifacts, err
}

func treeHash(tree *screen.Node) (string, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// =============================================================================
// Cache access
// =============================================================================

// cacheGet reads an entry. Backend errors degrade to misses so a broken
// cache never fails a request.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
