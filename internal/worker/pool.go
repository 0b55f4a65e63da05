package worker

import (
	"context"
	"errors"
	"sync"
)

// Job is a unit of work submitted to the Pool.
type Job func(ctx context.Context) error

// ErrPoolClosed is returned if Submit is called after Wait.
var ErrPoolClosed = errors.New("worker pool closed")

// Pool runs jobs on a fixed number of goroutines. The first job error cancels
// the pool context and is returned from Wait.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	ctx     context.Context
	cancel  context.CancelFunc

	closeMu sync.Mutex
	closed  bool

	errOnce sync.Once
	err     error
}

// New creates a pool with the given number of workers and queue capacity.
func New(workers, queue int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &Pool{
		jobs:    make(chan Job, queue),
		workers: workers,
	}
}

// Start launches the workers. They stop when ctx is done or Wait is called.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-p.ctx.Done():
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					if err := job(p.ctx); err != nil {
						p.fail(err)
					}
				}
			}
		}()
	}
}

func (p *Pool) fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		p.cancel()
	})
}

// Submit enqueues a job, blocking while the queue is full.
func (p *Pool) Submit(job Job) error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.jobs <- job:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Wait stops accepting jobs, waits for the workers and returns the first
// job error, or the context error if the pool was cancelled first.
func (p *Pool) Wait() error {
	p.closeMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.closeMu.Unlock()
	p.wg.Wait()

	var ctxErr error
	if p.err == nil {
		ctxErr = p.ctx.Err()
	}
	p.cancel()

	if p.err != nil {
		return p.err
	}
	return ctxErr
}
