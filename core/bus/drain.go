package bus

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/msgbus/core/logger"
)

// ProcessMessages drains the queue of every channel and returns the number of
// envelopes processed.
//
// Channels are picked in ascending priority order and each one is drained on
// its own goroutine, so priority decides which channel starts first, not which
// finishes first. Within a channel envelopes are processed oldest first, and
// each envelope is handed to the channel's handlers one after another before
// the next one is taken. Handler failures are logged and never stop the drain.
//
// Overlapping ProcessMessages calls share each channel's queue: every envelope
// is still dequeued exactly once and oldest first, but envelope N+1 may reach
// its handlers before the handlers of envelope N have finished.
func (b *Bus) ProcessMessages(ctx context.Context) int {
	return b.drainAll(ctx, sequential)
}

// ProcessMessagesAsync is like ProcessMessages but runs the handlers for each
// envelope concurrently, waiting for all of them before taking the next one.
func (b *Bus) ProcessMessagesAsync(ctx context.Context) int {
	return b.drainAll(ctx, concurrent)
}

func (b *Bus) drainAll(ctx context.Context, mode deliveryMode) int {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	channels := b.registry.PrioritizedChannels()

	var (
		g     errgroup.Group
		total atomic.Int64
	)
	for _, ch := range channels {
		if b.onSelect != nil {
			b.onSelect(ch)
		}
		g.Go(func() error {
			total.Add(int64(b.drain(ctx, ch, mode)))
			return nil
		})
	}
	_ = g.Wait()

	n := int(total.Load())
	if n > 0 {
		b.logger.DebugContext(ctx, "messages processed",
			logger.Count("messages", n),
			logger.Count("channels", len(channels)),
			logger.Duration(time.Since(start)))
	}
	return n
}

// drain empties one channel's queue, including envelopes queued while it runs.
func (b *Bus) drain(ctx context.Context, ch Channel, mode deliveryMode) int {
	q := b.registry.queueOf(ch.name)
	if q == nil {
		return 0
	}

	n := 0
	for {
		env, ok := q.pop()
		if !ok {
			break
		}
		b.deliver(ctx, ch, env, mode)
		n++
	}

	b.drained.Add(int64(n))
	return n
}
