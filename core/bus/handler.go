package bus

import (
	"context"
	"reflect"
)

// Handler consumes envelopes delivered on a channel.
// A returned error is logged as a *HandlerExecutionError and never reaches the sender.
type Handler interface {
	Handle(ctx context.Context, env Envelope) error
}

// HandlerFunc adapts a function to Handler.
//
// Function values are not comparable, so a bare HandlerFunc cannot be
// unregistered. Wrap it with NewHandlerFunc when removal is needed.
type HandlerFunc func(ctx context.Context, env Envelope) error

// Handle calls f(ctx, env).
func (f HandlerFunc) Handle(ctx context.Context, env Envelope) error {
	return f(ctx, env)
}

// NewHandlerFunc returns a removable handler that calls fn for every envelope.
func NewHandlerFunc(fn HandlerFunc) Handler {
	return &funcHandler{fn: fn}
}

type funcHandler struct {
	fn HandlerFunc
}

func (h *funcHandler) Handle(ctx context.Context, env Envelope) error {
	return h.fn(ctx, env)
}

// NewHandler returns a removable handler that calls fn only for payloads of
// type T. Envelopes carrying any other type are skipped silently.
//
// Example:
//
//	h := bus.NewHandler(func(ctx context.Context, msg PlayerMoved) error {
//	    return world.Move(msg.PlayerID, msg.To)
//	})
func NewHandler[T any](fn func(context.Context, T) error) Handler {
	return &typedHandler[T]{fn: fn}
}

type typedHandler[T any] struct {
	fn func(context.Context, T) error
}

func (h *typedHandler[T]) Handle(ctx context.Context, env Envelope) error {
	payload, ok := As[T](env)
	if !ok {
		return nil
	}
	return h.fn(ctx, payload)
}

// sameHandler reports whether a and b are the same registered handler.
// Handlers with non-comparable dynamic types never match.
func sameHandler(a, b Handler) (same bool) {
	if a == nil || b == nil {
		return false
	}

	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}

	// Comparable structs may still hold func values behind interface fields
	defer func() {
		if recover() != nil {
			same = false
		}
	}()

	return a == b
}
