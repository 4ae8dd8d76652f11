package actor

import "context"

// Slot is a one-shot reply channel connecting a waiting caller to the
// dispatcher. The dispatcher either delivers exactly one value or abandons
// the slot; the caller waits for whichever happens first.
type Slot[T any] struct {
	ch chan T
}

// NewSlot creates an empty reply slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{ch: make(chan T, 1)}
}

// Deliver places the reply into the slot. The buffer guarantees delivery
// never blocks, so a caller that stopped waiting makes this a harmless
// no-op rather than a dispatcher fault.
func (s *Slot[T]) Deliver(v T) {
	select {
	case s.ch <- v:
	default:
	}
}

// Abandon closes the slot without a value. A waiting caller receives
// [ErrResponseLost]. Must not be called after Deliver.
func (s *Slot[T]) Abandon() {
	close(s.ch)
}

// Wait blocks until the reply is delivered or the slot is abandoned.
func (s *Slot[T]) Wait() (T, error) {
	v, ok := <-s.ch
	if !ok {
		var zero T
		return zero, ErrResponseLost
	}
	return v, nil
}

// WaitCtx is Wait with cancellation. When ctx ends first the caller gives
// up on the reply; any later delivery lands in the slot's buffer and is
// garbage collected with it.
func (s *Slot[T]) WaitCtx(ctx context.Context) (T, error) {
	select {
	case v, ok := <-s.ch:
		if !ok {
			var zero T
			return zero, ErrResponseLost
		}
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
