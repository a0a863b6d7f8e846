// Package options provides the functional-options configuration surface for
// the store: data directory, network address, engine selection, the
// compaction trigger threshold, and the worker pool shape.
package options

import (
	"runtime"
	"strings"
)

// Options defines the configurable parameters of a store instance.
type Options struct {
	// DataDir is the directory segment files and last_engine.txt live in.
	DataDir string `json:"dataDir"`

	// Addr is the host:port the server listens on, or the client connects to.
	Addr string `json:"addr"`

	// Engine selects which Engine implementation backs the store: "kvs" for
	// the native log-structured engine, "sled" for the embedded third-party
	// one (backed by go.etcd.io/bbolt — see internal/engine).
	Engine string `json:"engine"`

	// CompactionThreshold is the number of dead bytes that must accumulate
	// since the last compaction before the next append triggers one.
	CompactionThreshold uint64 `json:"compactionThreshold"`

	// ThreadPoolKind selects the server's worker pool implementation: "naive",
	// "shared-queue", or "work-stealing".
	ThreadPoolKind string `json:"threadPoolKind"`

	// ThreadPoolSize is the number of workers the pool maintains (ignored by
	// the naive pool, which spawns one goroutine per job).
	ThreadPoolSize int `json:"threadPoolSize"`
}

// OptionFunc mutates an Options value being built.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to its default value.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the directory the store persists segment files in.
func WithDataDir(dir string) OptionFunc {
	return func(o *Options) {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			o.DataDir = dir
		}
	}
}

// WithAddr sets the network address the server binds, or the client dials.
func WithAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.Addr = addr
		}
	}
}

// WithEngine selects the storage engine implementation.
func WithEngine(engine string) OptionFunc {
	return func(o *Options) {
		engine = strings.TrimSpace(engine)
		if engine != "" {
			o.Engine = engine
		}
	}
}

// WithCompactionThreshold overrides the dead-byte threshold that triggers compaction.
func WithCompactionThreshold(threshold uint64) OptionFunc {
	return func(o *Options) {
		if threshold > 0 {
			o.CompactionThreshold = threshold
		}
	}
}

// WithThreadPoolKind selects the server's worker pool implementation.
func WithThreadPoolKind(kind string) OptionFunc {
	return func(o *Options) {
		kind = strings.TrimSpace(kind)
		if kind != "" {
			o.ThreadPoolKind = kind
		}
	}
}

// WithThreadPoolSize overrides the number of workers the pool maintains.
func WithThreadPoolSize(size int) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.ThreadPoolSize = size
		}
	}
}

func defaultThreadPoolSize() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
