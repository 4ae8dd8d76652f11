package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	adapter "github.com/codewandler/actgen-go/adapters/prometheus"
	"github.com/codewandler/actgen-go/core/actor"
)

func TestCounter_SequencedCalls(t *testing.T) {
	h, err := NewCounterHandle(5)
	require.NoError(t, err)
	defer h.Close()

	// the fire-and-forget increment is queued ahead of the waited call,
	// so the same handle always observes it
	require.NoError(t, h.Increment())

	got, err := h.AddNumber(5)
	require.NoError(t, err)
	require.Equal(t, 11, got)

	v, err := h.GetValue()
	require.NoError(t, err)
	require.Equal(t, 11, v)
}

func TestCounter_ConcurrentIncrementAndAdd(t *testing.T) {
	h, err := NewCounterHandle(5)
	require.NoError(t, err)
	defer h.Close()

	c := h.Clone()

	var wg sync.WaitGroup
	var fromAdd int
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = h.Increment()
	}()
	go func() {
		defer wg.Done()
		defer c.Close()
		if v, err := c.AddNumber(5); err == nil {
			fromAdd = v
		}
	}()
	wg.Wait()

	// both messages are applied exactly once, in whichever arrival order
	v, err := h.GetValue()
	require.NoError(t, err)
	require.Equal(t, 11, v)
	require.Contains(t, []int{10, 11}, fromAdd)
}

func TestCounter_ThreadBackend(t *testing.T) {
	h, err := NewCounterHandle(5, actor.WithBackend(actor.Thread()))
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Increment())
	got, err := h.AddNumber(5)
	require.NoError(t, err)
	require.Equal(t, 11, got)
}

func TestCounter_CloneFanout(t *testing.T) {
	h, err := NewCounterHandle(0)
	require.NoError(t, err)
	defer h.Close()

	const workers, perWorker = 8, 200
	errs := make(chan error, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		c := h.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.Close()
			for range perWorker {
				if _, err := c.AddNumber(1); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	v, err := h.GetValue()
	require.NoError(t, err)
	require.Equal(t, workers*perWorker, v)
}

func TestCounter_FireAndForgetReturnsBeforeProcessing(t *testing.T) {
	h, err := NewCounterHandle(0)
	require.NoError(t, err)
	defer h.Close()

	release := make(chan bool)
	start := time.Now()
	require.NoError(t, h.Block(release))
	require.Less(t, time.Since(start), time.Second, "enqueue must not wait for the blocked dispatcher")

	// further sends queue up behind the parked message
	require.NoError(t, h.Increment())
	close(release)

	v, err := h.GetValue()
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestCounter_PanicContainment(t *testing.T) {
	h, err := NewCounterHandle(3)
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Crash()
	require.ErrorIs(t, err, actor.ErrResponseLost)

	// the dispatcher survives the panic
	v, err := h.GetValue()
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestCounter_MethodErrorPassesThrough(t *testing.T) {
	h, err := NewCounterHandle(4)
	require.NoError(t, err)
	defer h.Close()

	half, err := h.Half()
	require.NoError(t, err)
	require.Equal(t, 2, half)

	require.NoError(t, h.Increment())
	_, err = h.Half()
	require.ErrorIs(t, err, errOddValue)
}

func TestCounter_CloseStopsHandleButNotClones(t *testing.T) {
	h, err := NewCounterHandle(0)
	require.NoError(t, err)
	c := h.Clone()

	h.Close()
	h.Close() // idempotent

	_, err = h.AddNumber(1)
	require.ErrorIs(t, err, actor.ErrHandleClosed)

	v, err := c.AddNumber(1)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	c.Close()
	_, err = c.GetValue()
	require.ErrorIs(t, err, actor.ErrHandleClosed)
}

type lifecycleMetrics struct {
	actor.DispatcherMetrics
	stopped chan string
}

func (m *lifecycleMetrics) DispatcherStopped(actorType string) { m.stopped <- actorType }

func TestCounter_DispatcherStopsAfterLastClose(t *testing.T) {
	m := &lifecycleMetrics{
		DispatcherMetrics: actor.NopDispatcherMetrics(),
		stopped:           make(chan string, 1),
	}

	h, err := NewCounterHandle(0, actor.WithMetrics(m))
	require.NoError(t, err)
	c := h.Clone()

	h.Close()
	select {
	case <-m.stopped:
		t.Fatal("dispatcher stopped while a clone was still open")
	case <-time.After(50 * time.Millisecond):
	}

	c.Close()
	select {
	case typ := <-m.stopped:
		require.Equal(t, "Counter", typ)
	case <-time.After(5 * time.Second):
		t.Fatal("dispatcher kept running after the last handle closed")
	}
}

func TestCounter_Identity(t *testing.T) {
	a, err := NewCounterHandle(0)
	require.NoError(t, err)
	defer a.Close()

	b := a.Clone()
	defer b.Close()

	require.NotEqual(t, a.ID(), b.ID(), "a clone claims a fresh id")
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, a.Equal(b))
	require.True(t, a.Equal(a))

	c, err := NewCounterHandle(0)
	require.NoError(t, err)
	defer c.Close()
	require.True(t, b.Less(c), "ids follow creation order across actors")
}

func TestCounter_PrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := NewCounterHandle(0, actor.WithMetrics(adapter.NewDispatcherMetrics(reg)))
	require.NoError(t, err)
	defer h.Close()

	_, err = h.AddNumber(2)
	require.NoError(t, err)
	// a second waited call fences the first one's bookkeeping
	_, err = h.GetValue()
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["actgen_messages_total"])
	require.True(t, names["actgen_message_duration_seconds"])
	require.True(t, names["actgen_dispatchers_running"])
}

func TestRecorder_OverrideHookCountsCalls(t *testing.T) {
	h, err := NewRecorderHandle(RecorderHooks{
		Record: func(obj *Recorder, event string) { obj.calls++ },
	})
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Record("first"))
	require.NoError(t, h.Record("second"))

	n, err := h.Calls()
	require.NoError(t, err)
	require.Equal(t, 2, n, "the hook ran instead of the empty method body")
}

func TestRecorder_NilHookRejected(t *testing.T) {
	_, err := NewRecorderHandle(RecorderHooks{})
	require.ErrorIs(t, err, actor.ErrNilHook)
}
