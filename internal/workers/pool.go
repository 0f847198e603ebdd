package workers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Pool runs blocking jobs on background goroutines.
type Pool struct {
	sem    chan struct{} // nil when unbounded
	size   int
	wg     sync.WaitGroup
	active atomic.Int64
	total  atomic.Int64
}

// NewPool creates a pool running at most size jobs at once. A size of zero
// or less means unbounded.
func NewPool(size int) *Pool {
	p := &Pool{}
	if size > 0 {
		p.size = size
		p.sem = make(chan struct{}, size)
	}
	return p
}

// Size returns the concurrency bound, or 0 when unbounded.
func (p *Pool) Size() int {
	return p.size
}

// Active returns the number of jobs currently running.
func (p *Pool) Active() int64 {
	return p.active.Load()
}

// Completed returns the number of jobs that have finished.
func (p *Pool) Completed() int64 {
	return p.total.Load()
}

// Do runs fn on a pool goroutine and waits for it to return.
//
// ctx only bounds the wait for a free slot. Once fn starts it runs to
// completion and Do waits for it. A panic in fn is returned as an error.
func (p *Pool) Do(ctx context.Context, fn func()) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if p.sem != nil {
		select {
		case p.sem <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	done := make(chan struct{})
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("worker job panicked: %v", r)
			}
		}()
		defer p.release()

		p.active.Add(1)
		fn()
	}()

	<-done
	return err
}

func (p *Pool) release() {
	p.active.Add(-1)
	p.total.Add(1)
	if p.sem != nil {
		<-p.sem
	}
}

// Wait blocks until every started job has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
