// Package engine provides the pluggable storage engine abstraction: three
// operations — set, get, remove — over a directory of on-disk state, plus
// the "kvs" native log-structured implementation and a "sled" implementation
// backed by an embedded third-party store. The server holds exactly one
// concrete Engine, chosen at startup by Open.
package engine

import (
	stdErrors "errors"
	"path/filepath"

	"github.com/gokvs/kvs/pkg/filesys"
	kvserrors "github.com/gokvs/kvs/pkg/errors"
	"github.com/gokvs/kvs/pkg/options"
	"go.uber.org/zap"
)

const (
	// KindKVS selects the native log-structured engine.
	KindKVS = "kvs"
	// KindSled selects the embedded third-party engine (go.etcd.io/bbolt).
	KindSled = "sled"

	lastEngineFile = "last_engine.txt"
)

// ErrEngineMismatch is returned by Open when the data directory was
// previously used with a different engine than the one requested.
var ErrEngineMismatch = stdErrors.New("data directory was created with a different engine")

// Engine is the storage contract every backend implements: set/get/remove
// over string keys and values, and a clean shutdown.
type Engine interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Remove(key string) error
	Close() error
}

// Open creates dir if absent, checks it against the engine recorded in
// last_engine.txt (refusing to continue on a mismatch), and constructs the
// requested engine implementation against it.
func Open(opts *options.Options, log *zap.SugaredLogger) (Engine, error) {
	kind := opts.Engine
	if kind == "" {
		kind = KindKVS
	}

	if err := filesys.CreateDir(opts.DataDir, 0755); err != nil {
		return nil, kvserrors.ClassifyDirectoryCreationError(err, opts.DataDir)
	}

	if err := checkEngineMarker(opts.DataDir, kind); err != nil {
		return nil, err
	}

	switch kind {
	case KindKVS:
		return openKVSEngine(opts, log)
	case KindSled:
		return openSledEngine(opts, log)
	default:
		return nil, kvserrors.NewOtherError(stdErrors.New("unknown engine: " + kind))
	}
}

// checkEngineMarker enforces that a data directory, once used with one
// engine, is never opened with another: it reads last_engine.txt if present
// and compares it against kind, writing the marker on first use.
func checkEngineMarker(dataDir, kind string) error {
	markerPath := filepath.Join(dataDir, lastEngineFile)

	exists, err := filesys.Exists(markerPath)
	if err != nil {
		return kvserrors.NewIOError(err, "failed to stat engine marker file").WithPath(markerPath)
	}

	if !exists {
		return filesys.WriteFile(markerPath, 0644, []byte(kind))
	}

	contents, err := filesys.ReadFile(markerPath)
	if err != nil {
		return kvserrors.NewIOError(err, "failed to read engine marker file").WithPath(markerPath)
	}

	if string(contents) != kind {
		return ErrEngineMismatch
	}
	return nil
}
