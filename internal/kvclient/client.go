// Package kvclient implements the synchronous client: connect, send one
// framed Command, decode one framed Response.
package kvclient

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/gokvs/kvs/internal/protocol"
	kvserrors "github.com/gokvs/kvs/pkg/errors"
	"go.uber.org/zap"
)

// Client holds one TCP connection to a kvserver and exchanges one
// request/response pair at a time over it.
type Client struct {
	conn  net.Conn
	codec *protocol.Codec
	log   *zap.SugaredLogger
}

// Dial connects to addr.
func Dial(addr string, log *zap.SugaredLogger) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, kvserrors.NewIOError(err, "failed to connect to server").WithDetail("addr", addr)
	}

	log.Debugw("connected to server", "addr", addr)
	return &Client{conn: conn, codec: protocol.NewCodec(conn), log: log}, nil
}

// Get sends a Get(key) request and returns the bound value, or (\"\", false)
// on a miss.
func (c *Client) Get(key string) (string, bool, error) {
	resp, err := c.roundTrip(protocol.NewGet(key))
	if err != nil {
		return "", false, err
	}
	if resp.Value == nil {
		return "", false, nil
	}
	return *resp.Value, true, nil
}

// Set sends a Set(key, value) request.
func (c *Client) Set(key, value string) error {
	_, err := c.roundTrip(protocol.NewSet(key, value))
	return err
}

// Remove sends a Remove(key) request. It returns the server's KeyNotFound
// error message unchanged if key was not bound.
func (c *Client) Remove(key string) error {
	_, err := c.roundTrip(protocol.NewRemove(key))
	return err
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) roundTrip(cmd protocol.Command) (protocol.Response, error) {
	c.log.Debugw("send request", "kind", cmd.Kind, "key", cmd.Key)

	if err := c.codec.WriteCommand(cmd); err != nil {
		return protocol.Response{}, err
	}

	resp, err := c.codec.ReadResponse()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return protocol.Response{}, kvserrors.NewIOError(nil, "server closed connection")
		}
		return protocol.Response{}, err
	}

	if resp.IsError() {
		return protocol.Response{}, fmt.Errorf("%s", resp.Err)
	}
	return resp, nil
}
