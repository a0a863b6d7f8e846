// Package kvserver implements the network front-end: a TCP listener whose
// accept loop hands each connection to the thread pool, which decodes
// framed commands, dispatches them to the storage engine, and writes back
// framed responses.
package kvserver

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gokvs/kvs/internal/engine"
	"github.com/gokvs/kvs/internal/protocol"
	"github.com/gokvs/kvs/internal/threadpool"
	kvserrors "github.com/gokvs/kvs/pkg/errors"
	"go.uber.org/zap"
)

// pollInterval bounds how long the accept loop's deadline-based Accept call
// blocks before it re-checks the shutdown flag.
const pollInterval = 200 * time.Millisecond

// Server accepts TCP connections and dispatches framed commands from each
// to a shared Engine via a Pool of worker goroutines.
type Server struct {
	listener *net.TCPListener
	engine   engine.Engine
	pool     threadpool.Pool
	log      *zap.SugaredLogger

	closing atomic.Bool
	conns   sync.WaitGroup
}

// New binds addr and returns a Server ready to Run.
func New(addr string, eng engine.Engine, pool threadpool.Pool, log *zap.SugaredLogger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, kvserrors.NewIOError(err, "failed to bind listener").WithDetail("addr", addr)
	}

	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return nil, kvserrors.NewOtherError(errors.New("listener is not a TCP listener"))
	}

	log.Infow("listening", "addr", addr)
	return &Server{listener: tcpLn, engine: eng, pool: pool, log: log}, nil
}

// Run accepts connections until Close is called, handing each to the pool.
// It polls for the shutdown flag between bounded-deadline Accept calls
// rather than blocking indefinitely, so Close's signal is observed promptly
// without needing a signal pipe.
func (s *Server) Run() error {
	for {
		if s.closing.Load() {
			return nil
		}

		if err := s.listener.SetDeadline(time.Now().Add(pollInterval)); err != nil {
			return kvserrors.NewIOError(err, "failed to set listener deadline")
		}

		conn, err := s.listener.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if s.closing.Load() {
				return nil
			}
			s.log.Errorw("accept failed", "error", err)
			continue
		}

		s.conns.Add(1)
		s.pool.Spawn(func() {
			defer s.conns.Done()
			s.serve(conn)
		})
	}
}

// serve reads and dispatches framed commands from conn until the peer
// closes the connection or a read/write fails.
func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	codec := protocol.NewCodec(conn)
	for {
		cmd, err := codec.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			s.log.Errorw("failed to decode command", "error", err)
			return
		}

		s.log.Debugw("recv request", "kind", cmd.Kind, "key", cmd.Key)
		resp := s.dispatch(cmd)

		if err := codec.WriteResponse(resp); err != nil {
			s.log.Errorw("failed to write response", "error", err)
			return
		}
	}
}

// dispatch applies cmd to the engine and builds the corresponding
// Response. A Get-miss is Success(nil), not an error, per spec §4.6/§6; a
// Remove of a missing key becomes Response.Err, not a connection failure.
func (s *Server) dispatch(cmd protocol.Command) protocol.Response {
	switch cmd.Kind {
	case protocol.CommandGet:
		value, err := s.engine.Get(cmd.Key)
		if err != nil {
			if kvserrors.IsKeyNotFoundError(err) {
				return protocol.Success(nil)
			}
			return protocol.Failure(err.Error())
		}
		return protocol.Success(&value)

	case protocol.CommandSet:
		if err := s.engine.Set(cmd.Key, cmd.Value); err != nil {
			return protocol.Failure(err.Error())
		}
		return protocol.Success(nil)

	case protocol.CommandRemove:
		if err := s.engine.Remove(cmd.Key); err != nil {
			return protocol.Failure(err.Error())
		}
		return protocol.Success(nil)

	default:
		return protocol.Failure("unexpected command: " + string(cmd.Kind))
	}
}

// Close stops the accept loop and blocks until every live connection's
// handler has returned.
func (s *Server) Close() error {
	if !s.closing.CompareAndSwap(false, true) {
		return nil
	}

	err := s.listener.Close()
	s.conns.Wait()

	if err != nil {
		return kvserrors.NewIOError(err, "failed to close listener")
	}
	return nil
}
