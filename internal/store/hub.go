package store

import "sync"

// Topics published by the repositories. Every committed mutation to a
// table publishes its topic so that live queries can re-read.
const (
	TopicEvents = "events"
	TopicXP     = "xp"
)

// Hub is a per-topic change broadcaster. Subscribers get a buffered
// signal channel; notifications coalesce when the subscriber lags, so
// writers never block on a slow observer.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan struct{}
	nextID int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Subscribe registers interest in a topic. The returned channel fires
// once per (coalesced) change; cancel removes the subscription and
// must be called when the observer goes away.
func (h *Hub) Subscribe(topic string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan struct{}, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]chan struct{})
	}
	h.subs[topic][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[topic]; ok {
			if _, live := subs[id]; live {
				delete(subs, id)
				close(ch)
			}
		}
	}
	return ch, cancel
}

// Publish signals all subscribers of the topic. A subscriber that has
// not yet consumed its previous signal is skipped; the pending signal
// already covers this change.
func (h *Hub) Publish(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close wakes and closes every subscriber channel. Further Subscribe
// calls return an already-closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
}
