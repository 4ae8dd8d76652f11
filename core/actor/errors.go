package actor

import "errors"

var (
	// Send errors
	ErrDispatchUnavailable = errors.New("dispatcher unavailable: mailbox closed")
	ErrHandleClosed        = errors.New("handle closed")

	// Reply errors
	ErrResponseLost = errors.New("response lost: reply abandoned by dispatcher")

	// Construction errors
	ErrNilHook = errors.New("override hook is nil")
)
