package actor

import (
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Options configures a spawned dispatcher. Generated constructors accept a
// variadic list of [Option] and resolve it through [NewOptions].
type Options struct {
	Backend Backend
	Metrics DispatcherMetrics
	Log     *slog.Logger

	instanceID string
}

// InstanceID is a short random id distinguishing this dispatcher in logs
// when several actors of the same type are alive.
func (o Options) InstanceID() string { return o.instanceID }

// Option mutates Options during construction.
type Option func(*Options)

// WithBackend selects the spawn backend. Default is [Task].
func WithBackend(b Backend) Option {
	return func(o *Options) { o.Backend = b }
}

// WithMetrics wires a metrics implementation. Default is no-op.
func WithMetrics(m DispatcherMetrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithLog sets the dispatcher logger. Default is slog.Default().
func WithLog(l *slog.Logger) Option {
	return func(o *Options) { o.Log = l }
}

// NewOptions resolves opts over defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		Backend:    Task(),
		Metrics:    NopDispatcherMetrics(),
		Log:        slog.Default(),
		instanceID: gonanoid.Must(8),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Backend == nil {
		o.Backend = Task()
	}
	if o.Metrics == nil {
		o.Metrics = NopDispatcherMetrics()
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	return o
}
