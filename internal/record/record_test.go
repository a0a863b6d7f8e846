package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSetEncodesAllFields(t *testing.T) {
	rec, err := NewSet("k", "v")
	require.NoError(t, err)
	require.Equal(t, KindSet, rec.Command)
	require.Equal(t, "k", rec.Key)
	require.Equal(t, "v", rec.Value)
	require.Greater(t, rec.Tstamp, uint64(0))

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, rec, decoded)
}

func TestNewRemoveHasEmptyValue(t *testing.T) {
	rec, err := NewRemove("k")
	require.NoError(t, err)
	require.Equal(t, KindRemove, rec.Command)
	require.Equal(t, "", rec.Value)
}
