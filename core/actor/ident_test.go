package actor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextID_StrictlyIncreasing(t *testing.T) {
	a := NextID()
	b := NextID()
	c := NextID()
	require.Less(t, a, b)
	require.Less(t, b, c)
}

func TestNextID_ConcurrentClaimsDistinct(t *testing.T) {
	const m = 256

	ids := make([]uint64, m)
	var wg sync.WaitGroup
	for i := range m {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = NextID()
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool, m)
	for _, id := range ids {
		require.False(t, seen[id], "id %d claimed twice", id)
		seen[id] = true
	}
}

func TestNextID_ClaimOrderMatchesRealTime(t *testing.T) {
	// A claim that completes before another starts must yield a smaller id.
	first := NextID()
	done := make(chan uint64, 1)
	go func() { done <- NextID() }()
	second := <-done
	require.Less(t, first, second)
}
