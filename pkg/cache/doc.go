// Package cache stores computed grids, screen trees, and rendered artifacts.
//
// # Backends
//
// All backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for API deployments
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing (caching disabled)
//
// Backends that can drop every entry also implement [Clearer].
//
// # Keys
//
// A [Keyer] derives keys from the inputs of each pipeline stage. Keys hash
// every input that affects the output, so a changed spec or width never
// hits a stale entry. [ScopedKeyer] prefixes keys to isolate tenants that
// share one backend.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.GridKey(8, spec, cache.GridKeyOpts{AspectRatio: 1})
//	data, hit, err := c.Get(ctx, key)
package cache
