package bus

import (
	"context"

	"github.com/dmitrymomot/msgbus/core/logger"
	"github.com/dmitrymomot/msgbus/pkg/async"
)

// Cancellation never interrupts a send: handlers get the caller's context
// values but the dispatch runs to completion even if ctx is cancelled.

// SendImmediate invokes the handlers of every target channel now.
// Within a channel handlers run one after another in registration order; with
// several targets, channels are processed in parallel. It returns
// *ChannelNotFoundError, before any handler runs, if a target was never
// registered. Handler failures are logged, not returned.
func (b *Bus) SendImmediate(ctx context.Context, payload any, channels ...Named) error {
	return b.sendImmediate(ctx, payload, channels, sequential)
}

// SendImmediateAsync is like SendImmediate but runs every handler of a
// channel concurrently. It returns once all handlers have finished.
func (b *Bus) SendImmediateAsync(ctx context.Context, payload any, channels ...Named) error {
	return b.sendImmediate(ctx, payload, channels, concurrent)
}

func (b *Bus) sendImmediate(ctx context.Context, payload any, targets []Named, mode deliveryMode) error {
	channels, err := b.registry.resolve(targets)
	if err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	env := NewEnvelope(payload)
	b.eachChannel(channels, func(ch Channel) {
		b.deliver(ctx, ch, env, mode)
	})
	return nil
}

// BroadcastImmediate invokes the handlers of every known channel now,
// channels in parallel and handlers within a channel in registration order.
func (b *Bus) BroadcastImmediate(ctx context.Context, payload any) {
	b.broadcastImmediate(ctx, payload, sequential)
}

// BroadcastImmediateAsync is like BroadcastImmediate but runs the handlers
// of each channel concurrently.
func (b *Bus) BroadcastImmediateAsync(ctx context.Context, payload any) {
	b.broadcastImmediate(ctx, payload, concurrent)
}

func (b *Bus) broadcastImmediate(ctx context.Context, payload any, mode deliveryMode) {
	channels := b.registry.KnownChannels()
	if len(channels) == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	env := NewEnvelope(payload)
	b.eachChannel(channels, func(ch Channel) {
		b.deliver(ctx, ch, env, mode)
	})
}

// Send queues payload on every target channel for the next ProcessMessages.
// No handler runs at send time. It returns *ChannelNotFoundError, before
// anything is queued, if a target was never registered.
func (b *Bus) Send(ctx context.Context, payload any, channels ...Named) error {
	resolved, err := b.registry.resolve(channels)
	if err != nil {
		return err
	}

	env := NewEnvelope(payload)
	for _, ch := range resolved {
		b.enqueue(ctx, ch, env)
	}
	return nil
}

// SendAsync is like Send but pushes onto the target queues concurrently.
func (b *Bus) SendAsync(ctx context.Context, payload any, channels ...Named) error {
	resolved, err := b.registry.resolve(channels)
	if err != nil {
		return err
	}

	b.enqueueAll(context.WithoutCancel(ctx), resolved, NewEnvelope(payload))
	return nil
}

// Broadcast queues payload on every known channel, each push running
// independently of the others.
func (b *Bus) Broadcast(ctx context.Context, payload any) {
	channels := b.registry.KnownChannels()
	if len(channels) == 0 {
		return
	}

	env := NewEnvelope(payload)
	b.eachChannel(channels, func(ch Channel) {
		b.enqueue(ctx, ch, env)
	})
}

// BroadcastAsync queues payload on every known channel using one future per
// channel and waits for all of them.
func (b *Bus) BroadcastAsync(ctx context.Context, payload any) {
	channels := b.registry.KnownChannels()
	if len(channels) == 0 {
		return
	}

	b.enqueueAll(context.WithoutCancel(ctx), channels, NewEnvelope(payload))
}

func (b *Bus) enqueueAll(ctx context.Context, channels []Channel, env Envelope) {
	futures := make([]*async.Future, 0, len(channels))
	for _, ch := range channels {
		futures = append(futures, async.Exec(ctx, ch, func(ctx context.Context, ch Channel) error {
			b.enqueue(ctx, ch, env)
			return nil
		}))
	}
	_ = async.ExecAll(futures...)
}

func (b *Bus) enqueue(ctx context.Context, ch Channel, env Envelope) {
	q := b.registry.queueOf(ch.name)
	if q == nil {
		return
	}

	q.push(env)
	b.enqueued.Add(1)

	b.logger.DebugContext(ctx, "message queued",
		logger.Channel(ch.name),
		logger.PayloadType(env.payloadType),
		logger.EnvelopeID(env.id))
}
