// Package async runs functions in their own goroutines and joins on them.
//
// Exec starts a function and returns a Future. ExecAll waits for every
// future it is given, so a caller can fan work out and block until the whole
// batch has finished:
//
//	futures := make([]*async.Future, 0, len(items))
//	for _, item := range items {
//		futures = append(futures, async.Exec(ctx, item, process))
//	}
//	if err := async.ExecAll(futures...); err != nil {
//		log.Printf("some items failed: %v", err)
//	}
//
// # Error Handling
//
// A panic inside the function is recovered and reported as an error wrapping
// ErrPanic, so one misbehaving function cannot take down the process.
// ExecAll never stops early: it waits for every future and combines their
// errors with errors.Join.
//
// # Context Support
//
// If the context is already cancelled when the goroutine starts, the function
// is not called and the future resolves with the context's error. Callers that
// need the function to run regardless should pass context.WithoutCancel(ctx).
package async
