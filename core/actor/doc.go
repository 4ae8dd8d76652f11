// Package actor is the runtime linked by actgen-generated code. It carries
// the mechanics every generated actor shares, so the emitted files stay
// small and declarative.
//
// A generated actor consists of three artifacts:
//   - a message protocol: one variant struct per method, behind an
//     unexported marker interface
//   - a dispatcher: a loop that exclusively owns one instance of the target
//     type and serves messages from a [Mailbox]
//   - a handle: a proxy whose methods mirror the target type but execute by
//     sending variants and awaiting replies through a [Slot]
//
// # Ownership and ordering
//
// The dispatcher goroutine is the only code that ever touches the owned
// object; all mutation is serialized by its receive loop, so the generated
// code needs no locks. Messages from a single handle arrive in send order.
// Messages from independent clones race and are processed in arrival order,
// each exactly once.
//
// # Lifecycle
//
// Handles hold sender references on the shared mailbox. [Sender.Clone] adds
// a reference, [Sender.Close] releases one; when the last reference is
// released the mailbox closes, the dispatcher drains whatever is already
// queued and exits.
//
// # Backends
//
// [Backend] abstracts how the dispatcher is spawned: [Task] runs it as an
// ordinary goroutine, [Thread] pins it to a dedicated OS thread, and [Pool]
// submits it to a shared ants pool. Protocol and dispatch logic are
// identical across backends.
//
// # Failure semantics
//
// Sending through a closed mailbox fails with [ErrDispatchUnavailable].
// When the dispatcher abandons a reply without delivering (the wrapped
// method panicked), the waiting caller receives [ErrResponseLost]. Errors
// returned by the wrapped method itself are ordinary response payload and
// pass through untouched.
package actor
