package threadpool

import (
	"sync"

	"go.uber.org/zap"
)

// sharedQueuePool runs a fixed number of workers pulling jobs off one
// bounded channel. A worker panic is recovered inside the worker goroutine
// itself, which spawns a replacement before returning, so the pool's
// effective worker count never drifts down.
type sharedQueuePool struct {
	jobs chan func()
	wg   sync.WaitGroup
	log  *zap.SugaredLogger

	// mu guards closed; held for read around every send so Close can't race
	// a Spawn into sending on an already-closed channel.
	mu     sync.RWMutex
	closed bool
}

func newSharedQueuePool(size int, log *zap.SugaredLogger) *sharedQueuePool {
	if size <= 0 {
		size = 1
	}

	p := &sharedQueuePool{jobs: make(chan func(), size), log: log}
	for i := 0; i < size; i++ {
		p.startWorker()
	}
	return p
}

func (p *sharedQueuePool) startWorker() {
	p.wg.Add(1)
	go p.runWorker()
}

func (p *sharedQueuePool) runWorker() {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("worker panicked, spawning replacement", "panic", r)
			p.mu.RLock()
			closed := p.closed
			p.mu.RUnlock()
			if !closed {
				p.startWorker()
			}
		}
	}()

	for job := range p.jobs {
		job()
	}
}

// Spawn enqueues job. It is a no-op once Close has begun.
func (p *sharedQueuePool) Spawn(job func()) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	p.jobs <- job
}

// Close signals shutdown by closing the job channel: every worker drains
// whatever is still buffered, then exits. Close blocks until all workers
// have exited.
func (p *sharedQueuePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}
