package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatcherMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDispatcherMetrics(reg)

	require.NotNil(t, m)

	timer := m.MessageDuration("Counter", "AddNumber")
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	m.Messages("Counter", "AddNumber").Inc()
	m.Panics("Counter", "AddNumber").Inc()
	m.MailboxDepth("Counter").Set(10)
	m.DispatcherStarted("Counter")
	m.DispatcherStopped("Counter")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	assert.True(t, names["actgen_message_duration_seconds"])
	assert.True(t, names["actgen_messages_total"])
	assert.True(t, names["actgen_panics_total"])
	assert.True(t, names["actgen_mailbox_depth"])
	assert.True(t, names["actgen_dispatchers_running"])
}

func TestDispatcherMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewDispatcherMetrics(reg)
	require.Panics(t, func() { NewDispatcherMetrics(reg) })
}
