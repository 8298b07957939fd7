package cache

import "golang.org/x/sync/singleflight"

// Coalescing wraps a Store so that concurrent GetOrCompute calls sharing a
// key collapse into a single compile. Spec §5 notes double-compute on a
// race is harmless and idempotent; this just makes the common case (many
// callers hitting the same not-yet-cached program at once) cheap rather
// than merely safe.
type Coalescing struct {
	Store
	group singleflight.Group
}

// NewCoalescing wraps an existing Store.
func NewCoalescing(store Store) *Coalescing {
	return &Coalescing{Store: store}
}

// GetOrCompute returns the cached Result for key if present; otherwise it
// calls compute, shares the in-flight call across any concurrent callers
// for the same key, and stores the result before returning it. An error
// from compute is never cached — the next call retries from scratch.
func (c *Coalescing) GetOrCompute(key string, compute func() (Result, error)) (Result, error) {
	if r, ok := c.Store.Get(key); ok {
		return r, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		r, err := compute()
		if err != nil {
			return Result{}, err
		}
		c.Store.Set(key, r)
		return r, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}
