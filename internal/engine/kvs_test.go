package engine

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	kvserrors "github.com/gokvs/kvs/pkg/errors"
	"github.com/gokvs/kvs/pkg/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOptions(t *testing.T) *options.Options {
	dir, err := os.MkdirTemp("", "kvs_engine_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.Engine = KindKVS
	return &opts
}

func openTestEngine(t *testing.T) *kvsEngine {
	opts := newTestOptions(t)
	eng, err := openKVSEngine(opts, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })
	return eng
}

// TestEndToEndScenarioOne mirrors the literal scenario from spec §8.
func TestEndToEndScenarioOne(t *testing.T) {
	eng := openTestEngine(t)

	require.NoError(t, eng.Set("a", "1"))

	v, err := eng.Get("a")
	require.NoError(t, err)
	require.Equal(t, "1", v)

	require.NoError(t, eng.Remove("a"))

	_, err = eng.Get("a")
	require.True(t, kvserrors.IsKeyNotFoundError(err))

	err = eng.Remove("a")
	require.True(t, kvserrors.IsKeyNotFoundError(err))
}

// TestReopenPreservesLastWrite mirrors end-to-end scenario 2.
func TestReopenPreservesLastWrite(t *testing.T) {
	opts := newTestOptions(t)
	log := zap.NewNop().Sugar()

	eng, err := openKVSEngine(opts, log)
	require.NoError(t, err)

	require.NoError(t, eng.Set("k", "v1"))
	require.NoError(t, eng.Set("k", "v2"))
	require.NoError(t, eng.Close())

	reopened, err := openKVSEngine(opts, log)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v2", v)
}

func TestGetMissingKeyIsKeyNotFound(t *testing.T) {
	eng := openTestEngine(t)

	_, err := eng.Get("missing")
	require.True(t, kvserrors.IsKeyNotFoundError(err))
}

func TestSetIsIdempotentForSameValue(t *testing.T) {
	eng := openTestEngine(t)

	require.NoError(t, eng.Set("k", "v"))
	require.NoError(t, eng.Set("k", "v"))

	v, err := eng.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}

func TestEmptyValueRoundTrips(t *testing.T) {
	eng := openTestEngine(t)

	require.NoError(t, eng.Set("k", ""))
	v, err := eng.Get("k")
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestLargeValueRoundTrips(t *testing.T) {
	eng := openTestEngine(t)

	large := strings.Repeat("x", 1<<20)
	require.NoError(t, eng.Set("big", large))

	v, err := eng.Get("big")
	require.NoError(t, err)
	require.Equal(t, large, v)
}

// TestRepeatedSetTriggersCompaction mirrors the boundary case and
// end-to-end scenario 3: many overwrites of a small set of keys must cross
// the compaction threshold and leave the directory with at most two
// segments while preserving the last-written value.
func TestRepeatedSetTriggersCompaction(t *testing.T) {
	opts := newTestOptions(t)
	opts.CompactionThreshold = 512
	log := zap.NewNop().Sugar()

	eng, err := openKVSEngine(opts, log)
	require.NoError(t, err)
	defer eng.Close()

	for i := 0; i < 1000; i++ {
		require.NoError(t, eng.Set("k", fmt.Sprintf("v%d", i)))
	}

	v, err := eng.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v999", v)

	entries, err := os.ReadDir(opts.DataDir)
	require.NoError(t, err)

	dbFiles := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".db") {
			dbFiles++
		}
	}
	require.LessOrEqual(t, dbFiles, 2)
}

// TestCompactionPreservesAllLiveKeys mirrors end-to-end scenario 3's
// 2000-key variant at a smaller scale.
func TestCompactionPreservesAllLiveKeys(t *testing.T) {
	opts := newTestOptions(t)
	opts.CompactionThreshold = 256
	log := zap.NewNop().Sugar()

	eng, err := openKVSEngine(opts, log)
	require.NoError(t, err)
	defer eng.Close()

	const n = 200
	for i := 0; i < n; i++ {
		require.NoError(t, eng.Set(fmt.Sprintf("key-%d", i), strings.Repeat("a", 100)))
	}
	for i := 0; i < n; i++ {
		require.NoError(t, eng.Set(fmt.Sprintf("key-%d", i), "x"))
	}

	for i := 0; i < n; i++ {
		v, err := eng.Get(fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		require.Equal(t, "x", v)
	}
}

// TestConcurrentDisjointKeys mirrors the N-threads/disjoint-keys property.
func TestConcurrentDisjointKeys(t *testing.T) {
	eng := openTestEngine(t)

	const threads = 4
	const perThread = 250

	var wg sync.WaitGroup
	for tnum := 0; tnum < threads; tnum++ {
		wg.Add(1)
		go func(tnum int) {
			defer wg.Done()
			for i := 0; i < perThread; i++ {
				key := fmt.Sprintf("t%d-%d", tnum, i)
				require.NoError(t, eng.Set(key, key))
			}
		}(tnum)
	}
	wg.Wait()

	for tnum := 0; tnum < threads; tnum++ {
		for i := 0; i < perThread; i++ {
			key := fmt.Sprintf("t%d-%d", tnum, i)
			v, err := eng.Get(key)
			require.NoError(t, err)
			require.Equal(t, key, v)
		}
	}
}

// TestConcurrentSameKeySettles mirrors the N-threads/same-key property:
// after all concurrent sets complete, a get must return one of the written
// values, never a torn or missing one.
func TestConcurrentSameKeySettles(t *testing.T) {
	eng := openTestEngine(t)

	const writers = 8
	written := make([]string, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		written[i] = fmt.Sprintf("value-%d", i)
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			require.NoError(t, eng.Set("shared", v))
		}(written[i])
	}
	wg.Wait()

	v, err := eng.Get("shared")
	require.NoError(t, err)
	require.Contains(t, written, v)
}
