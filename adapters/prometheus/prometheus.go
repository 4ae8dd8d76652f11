// Package prometheus provides a Prometheus implementation of the dispatcher
// metrics interface. Wire it into a generated constructor with
// actor.WithMetrics(prometheus.NewDispatcherMetrics(reg)).
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/actgen-go/core/actor"
	"github.com/codewandler/actgen-go/core/metrics"
)

// Default histogram buckets for latency metrics (in seconds).
var defaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

// dispatcherMetrics implements actor.DispatcherMetrics using Prometheus.
type dispatcherMetrics struct {
	messageDuration *prometheus.HistogramVec
	messagesTotal   *prometheus.CounterVec
	panicsTotal     *prometheus.CounterVec
	mailboxDepth    *prometheus.GaugeVec
	dispatchers     *prometheus.GaugeVec
}

// NewDispatcherMetrics creates a Prometheus implementation of
// actor.DispatcherMetrics and registers its collectors with reg.
func NewDispatcherMetrics(reg prometheus.Registerer) actor.DispatcherMetrics {
	m := &dispatcherMetrics{
		messageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "actgen_message_duration_seconds",
			Help:    "Message handling time in seconds",
			Buckets: defaultBuckets,
		}, []string{"actor", "method"}),

		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "actgen_messages_total",
			Help: "Total number of messages processed",
		}, []string{"actor", "method"}),

		panicsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "actgen_panics_total",
			Help: "Total number of contained dispatch panics",
		}, []string{"actor", "method"}),

		mailboxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "actgen_mailbox_depth",
			Help: "Mailbox queue depth observed at dispatch time",
		}, []string{"actor"}),

		dispatchers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "actgen_dispatchers_running",
			Help: "Number of live dispatcher loops",
		}, []string{"actor"}),
	}

	reg.MustRegister(
		m.messageDuration,
		m.messagesTotal,
		m.panicsTotal,
		m.mailboxDepth,
		m.dispatchers,
	)

	return m
}

// Prometheus metric handles satisfy the core/metrics interfaces directly,
// so the accessors hand out labelled children as-is.

func (m *dispatcherMetrics) MessageDuration(actorType, method string) metrics.Timer {
	return metrics.NewTimer(m.messageDuration.WithLabelValues(actorType, method))
}

func (m *dispatcherMetrics) Messages(actorType, method string) metrics.Counter {
	return m.messagesTotal.WithLabelValues(actorType, method)
}

func (m *dispatcherMetrics) Panics(actorType, method string) metrics.Counter {
	return m.panicsTotal.WithLabelValues(actorType, method)
}

func (m *dispatcherMetrics) MailboxDepth(actorType string) metrics.Gauge {
	return m.mailboxDepth.WithLabelValues(actorType)
}

func (m *dispatcherMetrics) DispatcherStarted(actorType string) {
	m.dispatchers.WithLabelValues(actorType).Inc()
}

func (m *dispatcherMetrics) DispatcherStopped(actorType string) {
	m.dispatchers.WithLabelValues(actorType).Dec()
}

var _ actor.DispatcherMetrics = (*dispatcherMetrics)(nil)
