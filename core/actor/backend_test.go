package actor

import (
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
)

func spawnAndWait(t *testing.T, b Backend) {
	t.Helper()
	done := make(chan struct{})
	require.NoError(t, b.Spawn(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("backend never ran the dispatcher")
	}
}

func TestTaskBackend(t *testing.T) {
	spawnAndWait(t, Task())
}

func TestThreadBackend(t *testing.T) {
	spawnAndWait(t, Thread())
}

func TestPoolBackend(t *testing.T) {
	p, err := ants.NewPool(2)
	require.NoError(t, err)
	defer p.Release()

	spawnAndWait(t, Pool(p))
}

func TestPoolBackend_ExhaustedPoolFailsSpawn(t *testing.T) {
	p, err := ants.NewPool(1, ants.WithNonblocking(true))
	require.NoError(t, err)
	defer p.Release()

	block := make(chan struct{})
	defer close(block)
	require.NoError(t, Pool(p).Spawn(func() { <-block }))

	// the single worker is occupied; a nonblocking pool rejects the spawn
	require.Error(t, Pool(p).Spawn(func() {}))
}
