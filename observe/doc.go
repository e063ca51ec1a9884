// Package observe provides observability primitives for cache lookups.
//
// It covers tracing, metrics and structured logging for the cache tiers.
// It does no caching itself and does no I/O beyond exporter setup. The
// pipeline package wires an Observer into every tier lookup.
package observe
