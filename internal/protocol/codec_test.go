package protocol

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecRoundTripsCommands(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	require.NoError(t, codec.WriteCommand(NewSet("k", "v")))
	require.NoError(t, codec.WriteCommand(NewGet("k")))
	require.NoError(t, codec.WriteCommand(NewRemove("k")))

	cmd, err := codec.ReadCommand()
	require.NoError(t, err)
	require.Equal(t, NewSet("k", "v"), cmd)

	cmd, err = codec.ReadCommand()
	require.NoError(t, err)
	require.Equal(t, NewGet("k"), cmd)

	cmd, err = codec.ReadCommand()
	require.NoError(t, err)
	require.Equal(t, NewRemove("k"), cmd)

	_, err = codec.ReadCommand()
	require.Equal(t, io.EOF, err)
}

func TestCodecRoundTripsResponses(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	value := "v"
	require.NoError(t, codec.WriteResponse(Success(&value)))
	require.NoError(t, codec.WriteResponse(Success(nil)))
	require.NoError(t, codec.WriteResponse(Failure("Key not found")))

	resp, err := codec.ReadResponse()
	require.NoError(t, err)
	require.NotNil(t, resp.Value)
	require.Equal(t, "v", *resp.Value)
	require.False(t, resp.IsError())

	resp, err = codec.ReadResponse()
	require.NoError(t, err)
	require.Nil(t, resp.Value)
	require.False(t, resp.IsError())

	resp, err = codec.ReadResponse()
	require.NoError(t, err)
	require.True(t, resp.IsError())
	require.Equal(t, "Key not found", resp.Err)
}
