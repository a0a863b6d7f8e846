package ignite

import (
	"os"
	"testing"

	"github.com/gokvs/kvs/internal/engine"
	"github.com/gokvs/kvs/pkg/options"
	"github.com/stretchr/testify/require"
)

func TestInstanceSetGetRemove(t *testing.T) {
	dir, err := os.MkdirTemp("", "ignite_instance_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	instance, err := NewInstance(
		"ignite-test",
		options.WithDataDir(dir),
		options.WithEngine(engine.KindKVS),
	)
	require.NoError(t, err)
	defer instance.Close()

	require.NoError(t, instance.Set("k", "v"))

	v, err := instance.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", v)

	require.NoError(t, instance.Remove("k"))

	_, err = instance.Get("k")
	require.Error(t, err)
}
