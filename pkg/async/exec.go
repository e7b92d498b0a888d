package async

import (
	"context"
	"errors"
	"fmt"
)

// ErrPanic is wrapped by the error of a future whose function panicked.
var ErrPanic = errors.New("async: function panicked")

// Future is the pending result of a function started with Exec.
type Future struct {
	err  error
	done chan struct{}
}

// Await blocks until the function has returned and reports its error.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// IsComplete reports whether the function has returned, without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec calls fn(ctx, param) in a new goroutine.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		// Skip the call once ctx is done
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.err = fn(ctx, param)
	}()

	return f
}

// ExecAll waits for every future and joins their errors.
// It returns nil when all of them succeeded or when called with no futures.
func ExecAll(futures ...*Future) error {
	var errs []error
	for _, future := range futures {
		if err := future.Await(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
