// Package bus provides an in-process publish-subscribe message bus with named
// channels, immediate and queued delivery, and priority-ordered draining.
//
// # Core Components
//
// Channel identifies a channel by name. Any Named value can be used where a
// channel is expected: a Preset such as bus.Gameplay, an arbitrary string via
// bus.Name("Gameplay"), or a Channel built with NewChannel. All three address
// the same channel when their names match.
//
// Envelope wraps one payload with its type tag, a UUID and a timestamp. One
// envelope is built per send call and is read-only from then on.
//
// Registry keeps, per channel, the ordered handler list, the priority recorded
// at first registration, and the queue of pending envelopes.
//
// Bus is the dispatcher. It owns one Registry and implements every delivery mode.
//
// # Basic Usage
//
//	type ScoreChanged struct {
//		Player string
//		Score  int
//	}
//
//	b := bus.New(bus.WithLogger(log))
//
//	h, err := bus.Subscribe(b, bus.Gameplay, func(ctx context.Context, msg ScoreChanged) error {
//		hud.SetScore(msg.Player, msg.Score)
//		return nil
//	})
//	if err != nil {
//		return err
//	}
//	defer b.Unregister(bus.Gameplay, h)
//
//	// Handlers run now, in registration order.
//	err = b.SendImmediate(ctx, ScoreChanged{Player: "p1", Score: 10}, bus.Gameplay)
//
//	// Handlers run on the next drain.
//	err = b.Send(ctx, ScoreChanged{Player: "p1", Score: 20}, bus.Name("Gameplay"))
//	b.ProcessMessages(ctx)
//
// # Delivery Modes
//
// SendImmediate and BroadcastImmediate call handlers before returning, one
// after another within each channel. The Async variants run every handler of
// a channel in its own goroutine and wait for all of them. When several
// channels are targeted, channels are processed in parallel in every mode.
//
// Send and Broadcast only queue the envelope. ProcessMessages and
// ProcessMessagesAsync drain all queues, starting channels in ascending
// priority order. Channels drain in parallel, so priority orders the start of
// each channel's drain, not its completion.
//
// # Priority
//
// A channel's priority is fixed by its first registration:
//
//	b.Register(bus.UI, h1, bus.WithPriority(1))
//	b.Register(bus.UI, h2, bus.WithPriority(9)) // still priority 1
//
// # Error Handling
//
// Registering a channel with an empty name fails with *InvalidChannelError.
// Sending to a channel that was never registered fails with
// *ChannelNotFoundError. A channel stays known after its last handler is
// unregistered.
//
// Handler errors and panics never reach the sender or stop a drain. They are
// wrapped in *HandlerExecutionError, logged with the channel name and payload
// type, and passed to the WithErrorHandler callback if one is configured.
//
// # Cancellation
//
// Dispatch is never interrupted. Handlers receive the caller's context values
// but not its cancellation. Each delivery invokes a handler exactly once;
// there are no retries.
package bus
