package bus

import (
	"cmp"
	"slices"
	"sync"
)

// channelEntry holds everything the registry tracks for one channel.
type channelEntry struct {
	channel  Channel
	handlers []Handler
	priority int
	queue    *queue
}

// Registry maps channel names to their handlers, priority and pending queue.
// Structural changes happen under a single mutex so the three stay consistent;
// queue traffic uses each queue's own lock.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*channelEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*channelEntry)}
}

// Register appends h to the channel's handler list.
//
// The first registration on a channel creates its handler list, its queue
// and records priority. Later registrations only append; their priority
// argument is ignored and the first recorded value stays in effect.
func (r *Registry) Register(n Named, h Handler, priority int) error {
	_, err := r.register(n, h, priority)
	return err
}

// register is Register that also returns the channel's entry state after
// the call: whether it was created and the priority in effect.
func (r *Registry) register(n Named, h Handler, priority int) (registration, error) {
	ch, err := ChannelOf(n)
	if err != nil {
		return registration{}, err
	}
	if h == nil {
		return registration{}, ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[ch.name]
	if !ok {
		r.entries[ch.name] = &channelEntry{
			channel:  ch,
			handlers: []Handler{h},
			priority: priority,
			queue:    &queue{},
		}
		return registration{channel: ch, created: true, priority: priority}, nil
	}

	entry.handlers = append(entry.handlers, h)
	return registration{channel: ch, priority: entry.priority}, nil
}

type registration struct {
	channel  Channel
	created  bool
	priority int
}

// Unregister removes the first registration of h on the channel and reports
// whether one was found. Unknown channels and handlers are ignored. The channel
// itself stays known even when its last handler is removed.
func (r *Registry) Unregister(n Named, h Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[nameOf(n)]
	if !ok {
		return false
	}

	for i, registered := range entry.handlers {
		if sameHandler(registered, h) {
			entry.handlers = slices.Delete(entry.handlers, i, i+1)
			return true
		}
	}
	return false
}

// Handlers returns a snapshot of the channel's handlers in registration order.
// The slice is a copy; later registrations do not affect it.
func (r *Registry) Handlers(n Named) []Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[nameOf(n)]
	if !ok {
		return nil
	}
	return slices.Clone(entry.handlers)
}

// Exists reports whether the channel has ever been registered.
func (r *Registry) Exists(n Named) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[nameOf(n)]
	return ok
}

// Priority returns the priority recorded at the channel's first registration.
func (r *Registry) Priority(n Named) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[nameOf(n)]
	if !ok {
		return 0, false
	}
	return entry.priority, true
}

// Pending returns the number of queued envelopes on the channel.
func (r *Registry) Pending(n Named) int {
	q := r.queueOf(nameOf(n))
	if q == nil {
		return 0
	}
	return q.len()
}

// KnownChannels returns every channel that has been registered, sorted by name.
func (r *Registry) KnownChannels() []Channel {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Channel, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.channel)
	}
	slices.SortFunc(out, func(a, b Channel) int {
		return cmp.Compare(a.name, b.name)
	})
	return out
}

// PrioritizedChannels returns every channel with a recorded priority, lowest
// priority value first. Equal priorities are ordered by name.
func (r *Registry) PrioritizedChannels() []Channel {
	r.mu.Lock()
	entries := make([]*channelEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	r.mu.Unlock()

	slices.SortFunc(entries, func(a, b *channelEntry) int {
		return cmp.Or(
			cmp.Compare(a.priority, b.priority),
			cmp.Compare(a.channel.name, b.channel.name),
		)
	})

	out := make([]Channel, len(entries))
	for i, entry := range entries {
		out[i] = entry.channel
	}
	return out
}

// resolve checks that every target is registered and returns the matching
// channels. It is the single gate in front of all send operations.
func (r *Registry) resolve(targets []Named) ([]Channel, error) {
	if len(targets) == 0 {
		return nil, ErrNoChannels
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Channel, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		name := nameOf(target)
		entry, ok := r.entries[name]
		if !ok {
			return nil, &ChannelNotFoundError{Channel: name}
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, entry.channel)
	}
	return out, nil
}

func (r *Registry) queueOf(name string) *queue {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil
	}
	return entry.queue
}

// pendingTotal returns the number of queued envelopes across all channels.
func (r *Registry) pendingTotal() int {
	r.mu.Lock()
	queues := make([]*queue, 0, len(r.entries))
	for _, entry := range r.entries {
		queues = append(queues, entry.queue)
	}
	r.mu.Unlock()

	total := 0
	for _, q := range queues {
		total += q.len()
	}
	return total
}
