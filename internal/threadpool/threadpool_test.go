package threadpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runsAllJobs(t *testing.T, pool Pool) {
	const n = 100
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		pool.Spawn(func() {
			defer wg.Done()
			count.Add(1)
		})
	}

	wg.Wait()
	require.Equal(t, int64(n), count.Load())
	require.NoError(t, pool.Close())
}

func TestNaivePoolRunsAllJobs(t *testing.T) {
	runsAllJobs(t, newNaivePool(zap.NewNop().Sugar()))
}

func TestSharedQueuePoolRunsAllJobs(t *testing.T) {
	runsAllJobs(t, newSharedQueuePool(4, zap.NewNop().Sugar()))
}

func TestAntsPoolRunsAllJobs(t *testing.T) {
	pool, err := newAntsPool(4, zap.NewNop().Sugar())
	require.NoError(t, err)
	runsAllJobs(t, pool)
}

func TestSharedQueuePoolRecoversPanickingJob(t *testing.T) {
	pool := newSharedQueuePool(2, zap.NewNop().Sugar())

	var wg sync.WaitGroup
	wg.Add(1)
	pool.Spawn(func() {
		panic("boom")
	})

	pool.Spawn(func() {
		defer wg.Done()
	})

	wg.Wait()
	require.NoError(t, pool.Close())
}

func TestSharedQueuePoolSpawnAfterCloseIsNoop(t *testing.T) {
	pool := newSharedQueuePool(2, zap.NewNop().Sugar())
	require.NoError(t, pool.Close())

	done := make(chan struct{})
	go func() {
		pool.Spawn(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Spawn after Close blocked instead of no-op")
	}
}
