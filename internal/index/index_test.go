package index

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestIndex() *Index {
	return New(&Config{DataDir: "/tmp/kvs-index-test", Logger: zap.NewNop().Sugar()})
}

func TestSetGetDelete(t *testing.T) {
	idx := newTestIndex()

	_, ok := idx.Get("a")
	require.False(t, ok)

	idx.Set("a", RecordPointer{SegmentID: 1, Offset: 0, Length: 10})
	ptr, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, RecordPointer{SegmentID: 1, Offset: 0, Length: 10}, ptr)

	require.True(t, idx.Delete("a"))
	_, ok = idx.Get("a")
	require.False(t, ok)

	require.False(t, idx.Delete("a"))
}

func TestSetOverwritesExistingKey(t *testing.T) {
	idx := newTestIndex()

	idx.Set("k", RecordPointer{SegmentID: 1, Offset: 0, Length: 5})
	idx.Set("k", RecordPointer{SegmentID: 2, Offset: 10, Length: 7})

	ptr, ok := idx.Get("k")
	require.True(t, ok)
	require.Equal(t, uint64(2), ptr.SegmentID)
	require.Equal(t, int64(7), ptr.Length)
}

func TestLenAndSnapshot(t *testing.T) {
	idx := newTestIndex()
	idx.Set("a", RecordPointer{SegmentID: 1})
	idx.Set("b", RecordPointer{SegmentID: 1})
	require.Equal(t, 2, idx.Len())

	snap := idx.Snapshot()
	require.Len(t, snap, 2)

	idx.Set("c", RecordPointer{SegmentID: 1})
	require.Len(t, snap, 2, "snapshot must not observe later mutations")
}

func TestCloseClearsIndexAndSecondCloseFails(t *testing.T) {
	idx := newTestIndex()
	idx.Set("a", RecordPointer{SegmentID: 1})

	require.NoError(t, idx.Close())
	require.ErrorIs(t, idx.Close(), ErrIndexClosed)

	require.Equal(t, 0, idx.Len())
}
