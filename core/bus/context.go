package bus

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/msgbus/core/logger"
)

type channelCtx struct{}

type envelopeCtx struct{}

// withDelivery attaches the channel and envelope being delivered to ctx.
func withDelivery(ctx context.Context, ch Channel, env Envelope) context.Context {
	ctx = context.WithValue(ctx, channelCtx{}, ch)
	return context.WithValue(ctx, envelopeCtx{}, env)
}

// ChannelFromContext returns the channel a handler is being invoked for.
func ChannelFromContext(ctx context.Context) (Channel, bool) {
	ch, ok := ctx.Value(channelCtx{}).(Channel)
	return ch, ok
}

// EnvelopeFromContext returns the envelope a handler is being invoked with.
func EnvelopeFromContext(ctx context.Context) (Envelope, bool) {
	env, ok := ctx.Value(envelopeCtx{}).(Envelope)
	return env, ok
}

// ContextExtractors returns logger extractors that add the delivery channel
// and envelope ID to records logged from inside handlers.
func ContextExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		func(ctx context.Context) (slog.Attr, bool) {
			ch, ok := ChannelFromContext(ctx)
			if !ok {
				return slog.Attr{}, false
			}
			return logger.Channel(ch.name), true
		},
		func(ctx context.Context) (slog.Attr, bool) {
			env, ok := EnvelopeFromContext(ctx)
			if !ok {
				return slog.Attr{}, false
			}
			return logger.EnvelopeID(env.id), true
		},
	}
}
