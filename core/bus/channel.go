package bus

// Named is anything that identifies a channel by name. Channel, Name and
// Preset all implement it, and every bus operation that targets a channel
// accepts a Named. Two values address the same channel iff their names match.
type Named interface {
	ChannelName() string
}

// Channel is the canonical channel identity. It is comparable and can be
// used as a map key; two Channels are equal iff their names are equal.
type Channel struct {
	name string
}

// NewChannel creates a channel with the given name.
// An empty name is rejected with *InvalidChannelError.
func NewChannel(name string) (Channel, error) {
	if name == "" {
		return Channel{}, &InvalidChannelError{Reason: "empty name"}
	}
	return Channel{name: name}, nil
}

// MustChannel is like NewChannel but panics on an empty name.
func MustChannel(name string) Channel {
	ch, err := NewChannel(name)
	if err != nil {
		panic(err)
	}
	return ch
}

// ChannelOf converts any channel representation into a Channel.
func ChannelOf(n Named) (Channel, error) {
	if n == nil {
		return Channel{}, &InvalidChannelError{Reason: "nil channel"}
	}
	if ch, ok := n.(Channel); ok {
		if ch.IsZero() {
			return Channel{}, &InvalidChannelError{Reason: "empty name"}
		}
		return ch, nil
	}
	return NewChannel(n.ChannelName())
}

// Name returns the channel name.
func (c Channel) Name() string { return c.name }

// ChannelName implements Named.
func (c Channel) ChannelName() string { return c.name }

func (c Channel) String() string { return c.name }

// IsZero reports whether c is the zero Channel, which names nothing.
func (c Channel) IsZero() bool { return c.name == "" }

// Name is an arbitrary string used as a channel, e.g. bus.Name("Gameplay").
type Name string

// ChannelName implements Named.
func (n Name) ChannelName() string { return string(n) }

func nameOf(n Named) string {
	if n == nil {
		return ""
	}
	return n.ChannelName()
}
