package actor

import (
	"log/slog"
	"runtime/debug"
)

// Enter records dispatcher start and returns the matching stop record for
// deferral. Generated dispatchers call `defer Enter(opt, "T")()` as their
// first statement.
func Enter(opt Options, actorType string) func() {
	opt.Metrics.DispatcherStarted(actorType)
	opt.Log.Debug("dispatcher started",
		slog.String("actor", actorType),
		slog.String("dispatcher", opt.InstanceID()),
	)
	return func() {
		opt.Metrics.DispatcherStopped(actorType)
		opt.Log.Debug("dispatcher stopped",
			slog.String("actor", actorType),
			slog.String("dispatcher", opt.InstanceID()),
		)
	}
}

// Dispatch runs one fire-and-forget message with timing and crash
// containment: a panic in fn is logged and counted, and the loop keeps
// running.
func Dispatch(opt Options, actorType, method string, fn func()) {
	t := opt.Metrics.MessageDuration(actorType, method)
	defer t.ObserveDuration()
	defer func() {
		if r := recover(); r != nil {
			opt.Metrics.Panics(actorType, method).Inc()
			opt.Log.Error("dispatch panicked",
				slog.String("actor", actorType),
				slog.String("method", method),
				slog.Any("recovered", r),
				slog.String("stack", string(debug.Stack())),
			)
			return
		}
		opt.Metrics.Messages(actorType, method).Inc()
	}()
	fn()
}

// DispatchReply runs one waiting message and delivers its result into the
// reply slot. A panic in fn abandons the slot, so the caller observes
// [ErrResponseLost] instead of hanging; the loop keeps running.
func DispatchReply[T any](opt Options, actorType, method string, reply *Slot[T], fn func() T) {
	t := opt.Metrics.MessageDuration(actorType, method)
	defer t.ObserveDuration()
	defer func() {
		if r := recover(); r != nil {
			reply.Abandon()
			opt.Metrics.Panics(actorType, method).Inc()
			opt.Log.Error("dispatch panicked",
				slog.String("actor", actorType),
				slog.String("method", method),
				slog.Any("recovered", r),
				slog.String("stack", string(debug.Stack())),
			)
			return
		}
		opt.Metrics.Messages(actorType, method).Inc()
	}()
	reply.Deliver(fn())
}
