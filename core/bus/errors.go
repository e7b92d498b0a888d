package bus

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrInvalidChannel is returned when a channel has an empty name.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrChannelNotFound is returned when sending to a channel that was never registered.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrHandlerExecution marks failures raised by a handler during dispatch.
	// Such failures are logged and never returned to senders.
	ErrHandlerExecution = errors.New("handler execution failed")

	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("handler is nil")

	// ErrNoChannels is returned when a send names no target channel.
	ErrNoChannels = errors.New("no target channels")
)

// InvalidChannelError reports a channel that cannot be used as a key.
type InvalidChannelError struct {
	Reason string
}

func (e *InvalidChannelError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidChannel, e.Reason)
}

func (e *InvalidChannelError) Unwrap() error {
	return ErrInvalidChannel
}

// ChannelNotFoundError reports a send targeting a channel with no registry entry.
type ChannelNotFoundError struct {
	Channel string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrChannelNotFound, e.Channel)
}

func (e *ChannelNotFoundError) Unwrap() error {
	return ErrChannelNotFound
}

// HandlerExecutionError wraps an error returned, or a panic raised, by a handler.
type HandlerExecutionError struct {
	Channel     string
	PayloadType string
	EnvelopeID  string
	Err         error
	// Panic holds the recovered value when the handler panicked.
	Panic any

	stack slog.Attr
}

func (e *HandlerExecutionError) Error() string {
	return fmt.Sprintf("%s on channel %q for %s: %v", ErrHandlerExecution, e.Channel, e.PayloadType, e.Err)
}

func (e *HandlerExecutionError) Unwrap() []error {
	return []error{ErrHandlerExecution, e.Err}
}
