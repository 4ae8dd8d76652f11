package actor

import (
	"runtime"

	"github.com/panjf2000/ants/v2"
)

// Backend abstracts how a dispatcher is spawned. The message protocol and
// the dispatch logic are identical across backends; only the spawn
// primitive differs.
type Backend interface {
	// Spawn starts fn as the dispatcher's execution context. It returns an
	// error only when the backend cannot start fn at all; in that case fn
	// never runs.
	Spawn(fn func()) error
}

type taskBackend struct{}

func (taskBackend) Spawn(fn func()) error {
	go fn()
	return nil
}

// Task returns the cooperative-task backend: the dispatcher runs as an
// ordinary goroutine and handle calls suspend only the calling goroutine.
// This is the default.
func Task() Backend { return taskBackend{} }

type threadBackend struct{}

func (threadBackend) Spawn(fn func()) error {
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		fn()
	}()
	return nil
}

// Thread returns the blocking-thread backend: the dispatcher runs pinned to
// a dedicated OS thread for its whole lifetime. Use this when the owned
// object relies on thread-local state (cgo, OS handles).
func Thread() Backend { return threadBackend{} }

type poolBackend struct {
	pool *ants.Pool
}

func (b poolBackend) Spawn(fn func()) error {
	return b.pool.Submit(fn)
}

// Pool returns a backend that runs dispatchers on a shared ants pool,
// bounding the number of goroutines when a process hosts many actors.
// A dispatcher occupies its pool worker until the actor terminates, so the
// pool must be sized for the number of concurrently live actors.
func Pool(p *ants.Pool) Backend { return poolBackend{pool: p} }
