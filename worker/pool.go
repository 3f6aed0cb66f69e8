package worker

import (
	"context"
	"log"
	"runtime"
	"sync"
)

// Job is one unit of action work, run on a worker goroutine.
type Job func(ctx context.Context) error

// DoneCallback is invoked from the worker goroutine when a job finishes.
type DoneCallback func(err error)

// Pool is a fixed-size action worker pool with a 1-slot input queue
// (strict back-pressure): a burst of confirmations beyond one queued job
// is dropped rather than piled up behind a slow action.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ctx  context.Context
	run  Job
	done DoneCallback
}

// New creates a worker pool. Size defaults to NumCPU when size<=0.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				err := j.run(j.ctx)
				if err != nil {
					log.Printf("worker: job failed: %v", err)
				}
				if j.done != nil {
					j.done(err)
				}
			}
		}()
	}
}

// Submit enqueues a job if the single-slot queue is free. Returns false if
// dropped.
func (p *Pool) Submit(ctx context.Context, run Job, done DoneCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, run: run, done: done}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
