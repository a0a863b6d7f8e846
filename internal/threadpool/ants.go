package threadpool

import (
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// antsPool delegates to github.com/panjf2000/ants/v2, the ecosystem's
// standard high-throughput goroutine pool, filling the work-stealing role
// a dedicated worker-stealing scheduler plays in the original.
type antsPool struct {
	pool *ants.Pool
	log  *zap.SugaredLogger
}

func newAntsPool(size int, log *zap.SugaredLogger) (*antsPool, error) {
	if size <= 0 {
		size = ants.DefaultAntsPoolSize
	}

	pool, err := ants.NewPool(size, ants.WithPanicHandler(func(r any) {
		log.Errorw("recovered panic in pool job", "panic", r)
	}))
	if err != nil {
		return nil, err
	}

	return &antsPool{pool: pool, log: log}, nil
}

// Spawn submits job to the pool, blocking briefly if every worker is busy
// and the pool is configured without nonblocking submission.
func (p *antsPool) Spawn(job func()) {
	if err := p.pool.Submit(job); err != nil {
		p.log.Errorw("failed to submit job to work-stealing pool", "error", err)
	}
}

// Close releases the pool's workers. It returns without waiting for jobs
// that are still running.
func (p *antsPool) Close() error {
	p.pool.Release()
	return nil
}
