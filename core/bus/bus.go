package bus

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/msgbus/core/logger"
)

// Bus dispatches payloads to the handlers registered on channels, either
// immediately or through per-channel queues drained by ProcessMessages.
//
// A Bus owns exactly one Registry. Create it once at startup with New and
// pass it to the code that needs it; it is safe for concurrent use and needs
// no teardown.
type Bus struct {
	registry        *Registry
	logger          *slog.Logger
	name            string
	defaultPriority int
	errorHandler    func(context.Context, *HandlerExecutionError)

	// onSelect observes the order in which a drain picks channels.
	onSelect func(Channel)

	delivered atomic.Int64
	failed    atomic.Int64
	enqueued  atomic.Int64
	drained   atomic.Int64
}

// Stats is a point-in-time view of bus activity.
type Stats struct {
	Delivered int64 // successful handler invocations
	Failed    int64 // handler invocations that returned an error or panicked
	Enqueued  int64 // envelopes pushed onto channel queues
	Drained   int64 // envelopes popped by ProcessMessages
	Pending   int   // envelopes currently queued
	Channels  int   // known channels
}

// Config holds bus settings loaded from the environment.
type Config struct {
	Name            string `env:"BUS_NAME" envDefault:"msgbus"`
	DefaultPriority int    `env:"BUS_DEFAULT_PRIORITY" envDefault:"0"`
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger configures structured logging for dispatch and drain.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDefaultPriority sets the priority used by Register when no WithPriority
// option is given.
func WithDefaultPriority(p int) Option {
	return func(b *Bus) {
		b.defaultPriority = p
	}
}

// WithErrorHandler observes handler failures after they are logged.
// The callback runs on the goroutine that invoked the failing handler.
func WithErrorHandler(fn func(context.Context, *HandlerExecutionError)) Option {
	return func(b *Bus) {
		b.errorHandler = fn
	}
}

// WithConfig applies settings loaded from the environment.
//
// Example:
//
//	var cfg bus.Config
//	config.MustLoad(&cfg)
//	b := bus.New(bus.WithConfig(cfg), bus.WithLogger(log))
func WithConfig(cfg Config) Option {
	return func(b *Bus) {
		if cfg.Name != "" {
			b.name = cfg.Name
		}
		b.defaultPriority = cfg.DefaultPriority
	}
}

// New creates a bus with an empty registry.
func New(opts ...Option) *Bus {
	b := &Bus{
		registry: NewRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		name:     "msgbus",
	}

	for _, opt := range opts {
		opt(b)
	}

	b.logger = b.logger.With(logger.Component(b.name))

	return b
}

// Registry returns the bus registry for inspection.
func (b *Bus) Registry() *Registry {
	return b.registry
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	priority    int
	hasPriority bool
}

// WithPriority sets the channel priority. It only takes effect on the first
// registration of a channel; lower values are drained first.
func WithPriority(p int) RegisterOption {
	return func(o *registerOptions) {
		o.priority = p
		o.hasPriority = true
	}
}

// Register adds h to the channel. The same handler may be registered more
// than once and is then invoked once per registration.
func (b *Bus) Register(n Named, h Handler, opts ...RegisterOption) error {
	o := registerOptions{priority: b.defaultPriority}
	for _, opt := range opts {
		opt(&o)
	}

	reg, err := b.registry.register(n, h, o.priority)
	if err != nil {
		return err
	}

	switch {
	case reg.created:
		b.logger.Debug("channel registered",
			logger.Channel(reg.channel.name),
			logger.Priority(reg.priority))
	case o.hasPriority && o.priority != reg.priority:
		b.logger.Debug("priority ignored for existing channel",
			logger.Channel(reg.channel.name),
			logger.Priority(reg.priority),
			slog.Int("requested_priority", o.priority))
	}

	return nil
}

// Unregister removes the first registration of h from the channel.
// It is a no-op when the channel or handler is unknown.
func (b *Bus) Unregister(n Named, h Handler) {
	if b.registry.Unregister(n, h) {
		b.logger.Debug("handler unregistered", logger.Channel(nameOf(n)))
	}
}

// Subscribe registers a handler for payloads of type T and returns it so it
// can later be passed to Unregister.
//
// Example:
//
//	h, err := bus.Subscribe(b, bus.Gameplay, func(ctx context.Context, msg PlayerMoved) error {
//	    return world.Move(msg.PlayerID, msg.To)
//	}, bus.WithPriority(1))
func Subscribe[T any](b *Bus, n Named, fn func(context.Context, T) error, opts ...RegisterOption) (Handler, error) {
	h := NewHandler(fn)
	if err := b.Register(n, h, opts...); err != nil {
		return nil, err
	}
	return h, nil
}

// Stats returns current counters for observability.
func (b *Bus) Stats() Stats {
	return Stats{
		Delivered: b.delivered.Load(),
		Failed:    b.failed.Load(),
		Enqueued:  b.enqueued.Load(),
		Drained:   b.drained.Load(),
		Pending:   b.registry.pendingTotal(),
		Channels:  len(b.registry.KnownChannels()),
	}
}
