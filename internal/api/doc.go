// Package api serves screen layouts over HTTP.
//
// The router is built with chi and delegates all work to a
// [pipeline.Runner], so responses share the CLI's cache:
//
//	GET  /healthz                 build info
//	GET  /v1/screens              built-in screen catalog
//	GET  /v1/screens/{name}       rendered screen (?width=&format=&style=&images=)
//	POST /v1/grid                 raw grid computation
//
// Errors are JSON objects of the form {"code": "...", "message": "..."}.
// Validation failures map to 400, unknown screens to 404 and everything
// else to 500.
package api
