package actor

import "sync/atomic"

// identity is the process-wide handle identity counter. It is initialized
// once at process start and never torn down; values stay valid for the
// process lifetime.
var identity atomic.Uint64

// NextID claims the next identity value. Claims are atomic: concurrent
// callers always receive distinct, strictly increasing values, so the
// relative order of ids matches the real-time order of successful claims.
// The first claimed id is 1.
func NextID() uint64 {
	return identity.Add(1)
}
