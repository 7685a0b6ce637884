package services

import (
	"context"
	"errors"
	"sync"
)

// ErrWorkerClosed is delivered to futures submitted after Close.
var ErrWorkerClosed = errors.New("worker closed")

// Result carries the outcome of one asynchronous operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Future is a single-shot handle on a submitted operation.
type Future[T any] struct {
	ch chan Result[T]
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan Result[T], 1)}
}

// Done yields exactly one Result once the operation has finished.
func (f *Future[T]) Done() <-chan Result[T] {
	return f.ch
}

// Await blocks until the operation finishes or ctx is done. Abandoning the
// wait does not cancel the operation itself.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case r := <-f.ch:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Worker runs submitted jobs one at a time, in submission order, on a
// single goroutine.
type Worker struct {
	mu     sync.RWMutex
	jobs   chan func()
	closed bool
	done   chan struct{}
}

func NewWorker(queue int) *Worker {
	w := &Worker{
		jobs: make(chan func(), queue),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.done)
	for job := range w.jobs {
		job()
	}
}

// Close stops accepting work and waits until queued jobs have run.
func (w *Worker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()
	<-w.done
}

// Submit queues fn on w. The result is published on the returned future
// after fn returns, never from inside Submit.
func Submit[T any](w *Worker, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	job := func() {
		v, err := fn()
		f.ch <- Result[T]{Value: v, Err: err}
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		f.ch <- Result[T]{Err: ErrWorkerClosed}
		return f
	}
	w.jobs <- job
	return f
}
