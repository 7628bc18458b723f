package times

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Run after Close.
var ErrPoolClosed = errors.New("parse pool closed")

// Pool runs CPU-bound parse work on a fixed number of workers so the
// event handlers never execute it inline.
type Pool struct {
	tasks chan task
	quit  chan struct{}
	wg    sync.WaitGroup
}

type task struct {
	fn   func()
	done chan struct{}
}

// NewPool starts a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks: make(chan task),
		quit:  make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case t := <-p.tasks:
			t.fn()
			close(t.done)
		}
	}
}

// Run submits fn and waits for it to complete. It returns early if the
// context is cancelled while queued or running.
func (p *Pool) Run(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}

	select {
	case p.tasks <- t:
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the workers. Pending Run calls return ErrPoolClosed.
func (p *Pool) Close() {
	close(p.quit)
	p.wg.Wait()
}
