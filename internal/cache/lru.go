package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is the default Store spec §4.6 calls for: size- and TTL-bounded, so
// a long-running host process can cache compiles without growing without
// bound when fed an endless stream of distinct user programs.
type LRU struct {
	cache *expirable.LRU[string, Result]
}

// NewLRU returns an LRU store holding at most capacity entries, each
// evicted after ttl if not refreshed. A ttl of 0 means entries never
// expire by age (only by capacity pressure).
func NewLRU(capacity int, ttl time.Duration) *LRU {
	return &LRU{cache: expirable.NewLRU[string, Result](capacity, nil, ttl)}
}

func (l *LRU) Has(key string) bool {
	_, ok := l.cache.Peek(key)
	return ok
}

func (l *LRU) Get(key string) (Result, bool) {
	return l.cache.Get(key)
}

func (l *LRU) Set(key string, result Result) {
	l.cache.Add(key, result)
}
