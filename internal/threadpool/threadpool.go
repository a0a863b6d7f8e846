// Package threadpool schedules job closures onto a bounded set of worker
// goroutines. Three interchangeable implementations trade off startup cost,
// bounded concurrency, and throughput exactly as the original naive/
// shared-queue/work-stealing trio does; the server picks one at startup via
// New and is otherwise indifferent to which it got.
package threadpool

import (
	"fmt"

	"github.com/gokvs/kvs/pkg/options"
	"go.uber.org/zap"
)

const (
	// KindNaive spawns a fresh goroutine per job.
	KindNaive = "naive"
	// KindSharedQueue runs a fixed worker count against a bounded channel.
	KindSharedQueue = "shared-queue"
	// KindWorkStealing delegates to github.com/panjf2000/ants/v2.
	KindWorkStealing = "work-stealing"
)

// Pool schedules job closures onto worker goroutines. Job is a one-shot
// callable; it must not panic without the pool catching it, since a worker
// thread dying without replacement would silently shrink the pool's
// effective concurrency.
type Pool interface {
	Spawn(job func())
	Close() error
}

// New constructs the worker pool variant named by kind, sized to
// opts.ThreadPoolSize (ignored by the naive pool).
func New(opts *options.Options, log *zap.SugaredLogger) (Pool, error) {
	kind := opts.ThreadPoolKind
	if kind == "" {
		kind = KindSharedQueue
	}

	switch kind {
	case KindNaive:
		return newNaivePool(log), nil
	case KindSharedQueue:
		return newSharedQueuePool(opts.ThreadPoolSize, log), nil
	case KindWorkStealing:
		return newAntsPool(opts.ThreadPoolSize, log)
	default:
		return nil, fmt.Errorf("unknown thread pool kind: %s", kind)
	}
}
