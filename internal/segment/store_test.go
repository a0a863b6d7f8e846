package segment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenEmptyDirCreatesSegmentOne(t *testing.T) {
	dir, err := os.MkdirTemp("", "segment_store_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	require.Equal(t, uint64(1), store.ActiveID())
	require.Equal(t, int64(0), store.Active().Size())
}

func TestAppendAndReadAt(t *testing.T) {
	dir, err := os.MkdirTemp("", "segment_store_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	pos, err := store.Active().Append([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)

	pos2, err := store.Active().Append([]byte("world"))
	require.NoError(t, err)
	require.Equal(t, int64(5), pos2)

	buf := make([]byte, 5)
	require.NoError(t, store.Active().ReadAt(buf, 0))
	require.Equal(t, "hello", string(buf))

	require.NoError(t, store.Active().ReadAt(buf, 5))
	require.Equal(t, "world", string(buf))
}

func TestReopenDiscoversSegmentsInOrder(t *testing.T) {
	dir, err := os.MkdirTemp("", "segment_store_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	store, err := Open(dir)
	require.NoError(t, err)

	_, err = store.Active().Append([]byte("one"))
	require.NoError(t, err)

	_, err = store.CreateActive(2)
	require.NoError(t, err)

	_, err = store.Active().Append([]byte("two"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, uint64(2), reopened.ActiveID())
	segs := reopened.Ascending()
	require.Len(t, segs, 2)
	require.Equal(t, uint64(1), segs[0].ID)
	require.Equal(t, uint64(2), segs[1].ID)
}

func TestDiscoverIDsIgnoresMalformedStems(t *testing.T) {
	dir, err := os.MkdirTemp("", "segment_store_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, os.WriteFile(dir+"/1.db", nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/02.db", nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/1_2.db", nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/notanumber.db", nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/3.txt", nil, 0644))

	ids, err := discoverIDs(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1}, ids)
}

func TestDeleteUpToLeavesActiveSegment(t *testing.T) {
	dir, err := os.MkdirTemp("", "segment_store_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.CreateSealed(2)
	require.NoError(t, err)
	_, err = store.CreateActive(3)
	require.NoError(t, err)

	require.NoError(t, store.DeleteUpTo(2))

	_, ok := store.Get(1)
	require.False(t, ok)
	_, ok = store.Get(2)
	require.False(t, ok)
	_, ok = store.Get(3)
	require.True(t, ok)
}
