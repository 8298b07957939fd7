// Package rconfig holds the Runner's tunables: the Options bag spec §6
// implies (timeout, cache sizing, message-mapper overrides), plain
// JSON-serializable configuration in the same style as the teacher's own
// config package.
package rconfig

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ulrunner/drc/internal/remap"
)

// MessageMapperEntry is the JSON-serializable form of one registered
// message mapper: Go can't marshal a func, so config files specify a
// literal match/replace pair instead, compiled into a closure by
// Options.MessageMappers.
type MessageMapperEntry struct {
	Match   string `json:"match"`
	Replace string `json:"replace"`
}

// Options is the Runner's tunable surface: per-execution timeout, cache
// sizing, and per-code message-mapper overrides.
type Options struct {
	TimeoutMs                   int64                        `json:"timeoutMs"`
	CacheCapacity               int                          `json:"cacheCapacity"`
	CacheTTLMs                  int64                        `json:"cacheTtlMs"`
	TypeErrorCodeMessageMappers map[int][]MessageMapperEntry  `json:"typeErrorCodeMessageMappers,omitempty"`
}

// DefaultOptions returns sensible defaults: a 5 second execution timeout
// and a 512-entry, 10 minute compilation cache.
func DefaultOptions() Options {
	return Options{
		TimeoutMs:     5000,
		CacheCapacity: 512,
		CacheTTLMs:    10 * 60 * 1000,
	}
}

// Timeout returns TimeoutMs as a time.Duration.
func (o Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutMs) * time.Millisecond
}

// CacheTTL returns CacheTTLMs as a time.Duration.
func (o Options) CacheTTL() time.Duration {
	return time.Duration(o.CacheTTLMs) * time.Millisecond
}

// LoadJSON parses a JSON-encoded Options document, starting from
// DefaultOptions so an omitted field keeps its default rather than
// zeroing out.
func LoadJSON(data []byte) (Options, error) {
	o := DefaultOptions()
	if err := json.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("rconfig: parsing options: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, fmt.Errorf("rconfig: invalid options: %w", err)
	}
	return o, nil
}

// MessageMappers compiles TypeErrorCodeMessageMappers into the closures
// remap.MessageMappers expects, seeded with the package defaults (spec
// §4.5's code-2792 example) so caller-supplied entries only need to cover
// what they want to override.
func (o Options) MessageMappers() remap.MessageMappers {
	mappers := remap.DefaultMessageMappers()
	for code, entries := range o.TypeErrorCodeMessageMappers {
		for _, e := range entries {
			mappers[code] = newLiteralRewriter(e.Match, e.Replace)
		}
	}
	return mappers
}

func newLiteralRewriter(match, replace string) remap.Rewriter {
	return func(text string) (string, bool) {
		if match == "" || !strings.Contains(text, match) {
			return "", false
		}
		return strings.Replace(text, match, replace, 1), true
	}
}
