package actor

import (
	"context"
	"sync"
	"sync/atomic"
)

// Mailbox is the multi-sender, single-receiver queue between handles and a
// dispatcher. Capacity > 0 gives a bounded queue where a full mailbox
// applies backpressure to Send; capacity <= 0 gives an unbounded queue
// where Send never blocks.
//
// The mailbox tracks sender references. It starts with one; Clone on the
// owning [Sender] adds more. When the count drops to zero the mailbox
// closes: queued messages are still drained by Receive, then Receive
// reports ok=false and the dispatcher exits.
type Mailbox[M any] struct {
	// bounded mode
	ch chan M

	// unbounded mode
	mu    sync.Mutex
	cond  *sync.Cond
	queue []M

	senders atomic.Int64
	closed  atomic.Bool
}

// NewMailbox creates a mailbox with the given capacity (<= 0 for unbounded)
// and a sender count of one, owned by the first [Sender].
func NewMailbox[M any](capacity int) *Mailbox[M] {
	m := &Mailbox[M]{}
	if capacity > 0 {
		m.ch = make(chan M, capacity)
	} else {
		m.cond = sync.NewCond(&m.mu)
	}
	m.senders.Store(1)
	return m
}

// Send enqueues a message, blocking for space in bounded mode.
// Returns [ErrDispatchUnavailable] when the mailbox is already closed.
//
// Callers must hold a live sender reference; that reference is what keeps
// the mailbox from closing between the check and the enqueue.
func (m *Mailbox[M]) Send(msg M) error {
	return m.SendCtx(context.Background(), msg)
}

// SendCtx is Send with cancellation while waiting for space.
func (m *Mailbox[M]) SendCtx(ctx context.Context, msg M) error {
	if m.closed.Load() {
		return ErrDispatchUnavailable
	}
	if m.ch != nil {
		select {
		case m.ch <- msg:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.cond.Signal()
	m.mu.Unlock()
	return nil
}

// Receive blocks until a message is available or, after the mailbox closed,
// until the queue is drained. ok=false means closed and empty: the receive
// loop should exit.
func (m *Mailbox[M]) Receive() (msg M, ok bool) {
	if m.ch != nil {
		msg, ok = <-m.ch
		return msg, ok
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.queue) == 0 && !m.closed.Load() {
		m.cond.Wait()
	}
	if len(m.queue) == 0 {
		var zero M
		return zero, false
	}
	msg = m.queue[0]
	var zero M
	m.queue[0] = zero // release for GC
	m.queue = m.queue[1:]
	return msg, true
}

// Len reports the number of queued messages.
func (m *Mailbox[M]) Len() int {
	if m.ch != nil {
		return len(m.ch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// AddSender registers one more sender reference.
func (m *Mailbox[M]) AddSender() {
	m.senders.Add(1)
}

// Release drops one sender reference. The last release closes the mailbox.
func (m *Mailbox[M]) Release() {
	if m.senders.Add(-1) > 0 {
		return
	}
	if !m.closed.CompareAndSwap(false, true) {
		return
	}
	if m.ch != nil {
		close(m.ch)
		return
	}
	m.mu.Lock()
	m.cond.Broadcast()
	m.mu.Unlock()
}

// Sender is a handle's view of a mailbox: a sender reference with its own
// closed state. Generated handles embed one Sender each; clones of a handle
// wrap fresh Senders over the same mailbox.
type Sender[M any] struct {
	mbox      *Mailbox[M]
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewSender wraps the mailbox's initial sender reference.
func NewSender[M any](mbox *Mailbox[M]) *Sender[M] {
	return &Sender[M]{mbox: mbox}
}

// Send enqueues through this sender's reference.
func (s *Sender[M]) Send(msg M) error {
	if s.closed.Load() {
		return ErrHandleClosed
	}
	return s.mbox.Send(msg)
}

// SendCtx is Send with cancellation while waiting for space.
func (s *Sender[M]) SendCtx(ctx context.Context, msg M) error {
	if s.closed.Load() {
		return ErrHandleClosed
	}
	return s.mbox.SendCtx(ctx, msg)
}

// Clone adds a sender reference and returns a new Sender sharing the same
// mailbox and dispatcher. Cloning a closed sender yields another closed
// sender: a released reference cannot revive the mailbox.
func (s *Sender[M]) Clone() *Sender[M] {
	if s.closed.Load() {
		c := &Sender[M]{mbox: s.mbox}
		c.closed.Store(true)
		c.closeOnce.Do(func() {})
		return c
	}
	s.mbox.AddSender()
	return &Sender[M]{mbox: s.mbox}
}

// Close releases this sender's reference. Idempotent. Closing the last
// sender shuts the mailbox and lets the dispatcher drain and exit.
func (s *Sender[M]) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.mbox.Release()
	})
}

// Len reports the number of queued messages in the shared mailbox.
func (s *Sender[M]) Len() int { return s.mbox.Len() }
