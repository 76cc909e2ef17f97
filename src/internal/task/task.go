// Package task runs background work behind a handle the caller can await, cancel and join.
package task

import (
	"context"
	"fmt"
)

// Task is a unit of background work producing a T.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	result T
	err    error
}

// Go starts fn on its own goroutine with a cancelable child of ctx.
// A panic inside fn is recovered and returned as the task's error.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		t.result, t.err = fn(ctx)
	}()

	return t
}

// Cancel asks the task to stop. It does not wait; call Wait to join.
func (t *Task[T]) Cancel() {
	t.cancel()
}

// Done is closed when the task has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its result.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.result, t.err
}

// Await is like Wait but gives up when ctx is done. The task keeps running.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
