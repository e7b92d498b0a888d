package bus

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/msgbus/core/logger"
	"github.com/dmitrymomot/msgbus/pkg/async"
)

// deliveryMode selects how the handlers of one channel run for one envelope.
type deliveryMode int

const (
	// sequential runs handlers one after another in registration order.
	sequential deliveryMode = iota
	// concurrent runs every handler in its own goroutine and joins them.
	concurrent
)

// deliver invokes the channel's current handlers with env.
func (b *Bus) deliver(ctx context.Context, ch Channel, env Envelope, mode deliveryMode) {
	handlers := b.registry.Handlers(ch)

	if mode == sequential || len(handlers) < 2 {
		for _, h := range handlers {
			b.invoke(ctx, ch, h, env)
		}
		return
	}

	futures := make([]*async.Future, 0, len(handlers))
	for _, h := range handlers {
		futures = append(futures, async.Exec(ctx, h, func(ctx context.Context, h Handler) error {
			b.invoke(ctx, ch, h, env)
			return nil
		}))
	}
	// invoke reports its own failures
	_ = async.ExecAll(futures...)
}

// invoke calls one handler and isolates its failure from the caller.
func (b *Bus) invoke(ctx context.Context, ch Channel, h Handler, env Envelope) {
	if herr := b.call(withDelivery(ctx, ch, env), ch, h, env); herr != nil {
		b.failed.Add(1)
		b.report(ctx, herr)
		return
	}
	b.delivered.Add(1)
}

func (b *Bus) call(ctx context.Context, ch Channel, h Handler, env Envelope) (herr *HandlerExecutionError) {
	defer func() {
		if r := recover(); r != nil {
			herr = &HandlerExecutionError{
				Channel:     ch.name,
				PayloadType: env.payloadType,
				EnvelopeID:  env.id,
				Err:         fmt.Errorf("panic: %v", r),
				Panic:       r,
				stack:       logger.Stack(),
			}
		}
	}()

	if err := h.Handle(ctx, env); err != nil {
		return &HandlerExecutionError{
			Channel:     ch.name,
			PayloadType: env.payloadType,
			EnvelopeID:  env.id,
			Err:         err,
		}
	}
	return nil
}

// report logs a handler failure and hands it to the error handler, if any.
func (b *Bus) report(ctx context.Context, herr *HandlerExecutionError) {
	b.logger.ErrorContext(ctx, "message handler failed",
		logger.Channel(herr.Channel),
		logger.PayloadType(herr.PayloadType),
		logger.EnvelopeID(herr.EnvelopeID),
		logger.Error(herr.Err),
		logger.Panic(herr.Panic),
		herr.stack)

	if b.errorHandler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "error handler panicked",
				logger.Channel(herr.Channel),
				logger.Panic(r))
		}
	}()
	b.errorHandler(ctx, herr)
}

// eachChannel runs fn once per channel. A single channel runs on the caller's
// goroutine; several run in parallel and eachChannel returns when all are done.
func (b *Bus) eachChannel(channels []Channel, fn func(Channel)) {
	switch len(channels) {
	case 0:
		return
	case 1:
		fn(channels[0])
		return
	}

	var g errgroup.Group
	for _, ch := range channels {
		g.Go(func() error {
			fn(ch)
			return nil
		})
	}
	_ = g.Wait()
}
