package protocol

import (
	"encoding/json"
	"io"

	kvserrors "github.com/gokvs/kvs/pkg/errors"
)

// Codec frames Command/Response values over a connection one JSON value at
// a time. A single Codec is safe to use for many request/response round
// trips on the same connection — the spec allows it to be reused or closed
// after one exchange.
type Codec struct {
	enc *json.Encoder
	dec *json.Decoder
}

// NewCodec wraps rw for framed Command/Response exchange.
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{enc: json.NewEncoder(rw), dec: json.NewDecoder(rw)}
}

// WriteCommand encodes and sends cmd.
func (c *Codec) WriteCommand(cmd Command) error {
	if err := c.enc.Encode(cmd); err != nil {
		return kvserrors.NewIOError(err, "failed to write command")
	}
	return nil
}

// ReadCommand decodes the next Command from the stream. A returned io.EOF
// means the peer closed the connection between requests, which is not an
// error at this layer.
func (c *Codec) ReadCommand() (Command, error) {
	var cmd Command
	if err := c.dec.Decode(&cmd); err != nil {
		if err == io.EOF {
			return Command{}, io.EOF
		}
		return Command{}, kvserrors.NewSerdeError(err, "failed to decode command")
	}
	return cmd, nil
}

// WriteResponse encodes and sends resp.
func (c *Codec) WriteResponse(resp Response) error {
	if err := c.enc.Encode(resp); err != nil {
		return kvserrors.NewIOError(err, "failed to write response")
	}
	return nil
}

// ReadResponse decodes the next Response from the stream.
func (c *Codec) ReadResponse() (Response, error) {
	var resp Response
	if err := c.dec.Decode(&resp); err != nil {
		if err == io.EOF {
			return Response{}, io.EOF
		}
		return Response{}, kvserrors.NewSerdeError(err, "failed to decode response")
	}
	return resp, nil
}
