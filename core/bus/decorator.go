package bus

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/msgbus/core/logger"
)

// Decorator wraps a Handler to add behavior around it.
type Decorator func(Handler) Handler

// Decorate applies decorators to h in order; the first one wraps innermost.
// The returned handler is removable like any handler built by this package.
//
// Example:
//
//	h := bus.Decorate(bus.NewHandler(saveReplay), bus.Logging(log))
//	b.Register(bus.System, h)
func Decorate(h Handler, decorators ...Decorator) Handler {
	for _, d := range decorators {
		h = d(h)
	}
	return h
}

// Logging logs the start and outcome of every invocation at debug level.
// The wrapped handler is called exactly once per envelope and its error is
// returned unchanged.
func Logging(log *slog.Logger) Decorator {
	return func(next Handler) Handler {
		return &loggingHandler{next: next, log: log}
	}
}

type loggingHandler struct {
	next Handler
	log  *slog.Logger
}

func (h *loggingHandler) Handle(ctx context.Context, env Envelope) error {
	start := time.Now()
	h.log.DebugContext(ctx, "handler started",
		logger.PayloadType(env.payloadType),
		logger.EnvelopeID(env.id))

	if err := h.next.Handle(ctx, env); err != nil {
		h.log.DebugContext(ctx, "handler failed",
			logger.PayloadType(env.payloadType),
			logger.EnvelopeID(env.id),
			logger.Duration(time.Since(start)),
			logger.Error(err))
		return err
	}

	h.log.DebugContext(ctx, "handler completed",
		logger.PayloadType(env.payloadType),
		logger.EnvelopeID(env.id),
		logger.Duration(time.Since(start)))
	return nil
}
