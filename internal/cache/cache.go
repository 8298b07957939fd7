package cache

import "github.com/ulrunner/drc/internal/remap"

// Result is what the cache stores per key: either a successful compile's
// emitted JS (keyed by stripped logical name) or the diagnostic list a
// failed compile produced. Spec §4.6 requires both be cacheable, so that
// repeated compilation of a known-bad program is a pure lookup too.
type Result struct {
	Success     bool
	EmittedJS   map[string]string
	EmittedMap  map[string]string
	Diagnostics []remap.Diagnostic
}

// Store is the pluggable key→Result contract spec §4.6 names: has, get,
// set. Implementations may be unbounded (Memory, for tests), LRU with TTL
// (LRU, the default), or shared across a process — callers only ever see
// this interface.
type Store interface {
	Has(key string) bool
	Get(key string) (Result, bool)
	Set(key string, result Result)
}
