package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "grid:a"); hit || err != nil {
		t.Fatalf("Get(empty) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "grid:a", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "grid:a")
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "grid:a", []byte("replaced"), 0); err != nil {
		t.Fatal(err)
	}
	if data, _, _ := c.Get(ctx, "grid:a"); string(data) != "replaced" {
		t.Errorf("Get() after overwrite = %q", data)
	}

	if err := c.Delete(ctx, "grid:a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "grid:a"); hit {
		t.Error("Get() hit after Delete")
	}
	if err := c.Delete(ctx, "grid:a"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry reported as hit")
	}
	if _, err := os.Stat(c.(*FileCache).path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)

	path := fc.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v; want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.(Clearer).Clear(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Clear() = %d, %v; want 3, nil", n, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir still holds %d entries", len(entries))
	}
	if fc := c.(*FileCache); fc.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", fc.Dir(), dir)
	}
}

func TestNewFileCacheError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileCache(filepath.Join(blocker, "sub"))
	if !flexerrors.Is(err, flexerrors.ErrCodeCache) {
		t.Errorf("NewFileCache() code = %q, want %q", flexerrors.GetCode(err), flexerrors.ErrCodeCache)
	}
}

func TestBackendConfigValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := NewRedisCache(ctx, RedisConfig{}); !flexerrors.Is(err, flexerrors.ErrCodeInvalidInput) {
		t.Errorf("NewRedisCache(empty) code = %q", flexerrors.GetCode(err))
	}
	if _, err := NewMongoCache(ctx, MongoConfig{}); !flexerrors.Is(err, flexerrors.ErrCodeInvalidInput) {
		t.Errorf("NewMongoCache(empty) code = %q", flexerrors.GetCode(err))
	}
}
