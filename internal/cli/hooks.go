package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexgrid/pkg/observability"
)

// debugHooks logs pipeline, cache and HTTP events at debug level.
type debugHooks struct {
	logger *log.Logger
}

var (
	_ observability.LayoutHooks = debugHooks{}
	_ observability.CacheHooks  = debugHooks{}
	_ observability.HTTPHooks   = debugHooks{}
)

// registerDebugHooks installs debugHooks when the logger is at debug level.
func registerDebugHooks(logger *log.Logger) {
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	h := debugHooks{logger: logger.WithPrefix("hooks")}
	observability.SetLayoutHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h debugHooks) OnGridStart(_ context.Context, count int) {
	h.logger.Debug("grid start", "items", count)
}

func (h debugHooks) OnGridComplete(_ context.Context, count, columns int, d time.Duration, err error) {
	h.logger.Debug("grid complete", "items", count, "columns", columns, "duration", d, "error", err)
}

func (h debugHooks) OnBuildStart(_ context.Context, name string, width float64) {
	h.logger.Debug("build start", "screen", name, "width", width)
}

func (h debugHooks) OnBuildComplete(_ context.Context, name string, width float64, nodes int, d time.Duration, err error) {
	h.logger.Debug("build complete", "screen", name, "width", width, "nodes", nodes, "duration", d, "error", err)
}

func (h debugHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h debugHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "duration", d, "error", err)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("http request", "method", method, "route", route)
}

func (h debugHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "route", route, "status", status, "duration", d)
}
