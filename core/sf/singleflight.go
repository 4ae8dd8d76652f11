package sf

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Singleflight deduplicates concurrent function calls with the same key.
// Only the first caller executes the function; others wait and receive
// the same result. The zero value is ready to use.
type Singleflight[T any] struct {
	group singleflight.Group
}

// Do executes fn for the given key, deduplicating concurrent calls.
// If a call is already in-flight for this key, Do blocks until it completes
// and returns the same result. The function fn is guaranteed to execute
// at most once per key at any given time.
func (s *Singleflight[T]) Do(key string, fn func() (*T, error)) (*T, error) {
	v, err, _ := s.group.Do(key, func() (out any, err error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

// Cache combines single-flight deduplication with memoization: fn runs at
// most once per key for the lifetime of the Cache, concurrent or not.
// Errors are not memoized, so a failed computation is retried on the next
// call for that key.
type Cache[T any] struct {
	sf   Singleflight[T]
	done sync.Map // key -> *T
}

// Do returns the memoized result for key, computing it via fn on first use.
func (c *Cache[T]) Do(key string, fn func() (*T, error)) (*T, error) {
	if v, ok := c.done.Load(key); ok {
		return v.(*T), nil
	}
	v, err := c.sf.Do(key, fn)
	if err != nil {
		return nil, err
	}
	c.done.Store(key, v)
	return v, nil
}

// NewCache creates a new memoizing Cache for type T.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{}
}
