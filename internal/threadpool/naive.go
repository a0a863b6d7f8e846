package threadpool

import (
	"sync"

	"go.uber.org/zap"
)

// naivePool spawns a fresh goroutine for every job. It gives no bound on
// concurrency; it exists as the baseline the other two variants improve on.
type naivePool struct {
	log *zap.SugaredLogger
	wg  sync.WaitGroup
}

func newNaivePool(log *zap.SugaredLogger) *naivePool {
	return &naivePool{log: log}
}

// Spawn runs job on a brand-new goroutine, recovering a panic so one bad
// job never takes the process down.
func (p *naivePool) Spawn(job func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer recoverJobPanic(p.log)
		job()
	}()
}

// Close waits for every in-flight job to finish. There is no queue to
// drain and no workers to signal; waiting on the group is sufficient.
func (p *naivePool) Close() error {
	p.wg.Wait()
	return nil
}

func recoverJobPanic(log *zap.SugaredLogger) {
	if r := recover(); r != nil {
		log.Errorw("recovered panic in pool job", "panic", r)
	}
}
