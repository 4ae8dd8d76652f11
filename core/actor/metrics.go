package actor

import "github.com/codewandler/actgen-go/core/metrics"

// DispatcherMetrics is the instrumentation surface of generated
// dispatchers. actorType is the target type name baked in at generation
// time; method is the dispatched method name. All methods are thread-safe.
type DispatcherMetrics interface {
	// Message handling
	MessageDuration(actorType, method string) metrics.Timer
	Messages(actorType, method string) metrics.Counter
	Panics(actorType, method string) metrics.Counter

	// Mailbox
	MailboxDepth(actorType string) metrics.Gauge

	// Lifecycle
	DispatcherStarted(actorType string)
	DispatcherStopped(actorType string)
}

// nopDispatcherMetrics is a no-op implementation of DispatcherMetrics.
type nopDispatcherMetrics struct{}

func (nopDispatcherMetrics) MessageDuration(string, string) metrics.Timer { return metrics.NopTimer() }
func (nopDispatcherMetrics) Messages(string, string) metrics.Counter      { return metrics.NopCounter() }
func (nopDispatcherMetrics) Panics(string, string) metrics.Counter        { return metrics.NopCounter() }

func (nopDispatcherMetrics) MailboxDepth(string) metrics.Gauge { return metrics.NopGauge() }

func (nopDispatcherMetrics) DispatcherStarted(string) {}
func (nopDispatcherMetrics) DispatcherStopped(string) {}

// NopDispatcherMetrics returns a no-op DispatcherMetrics implementation.
func NopDispatcherMetrics() DispatcherMetrics { return nopDispatcherMetrics{} }
