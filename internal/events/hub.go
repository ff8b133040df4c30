package events

import (
	"context"
	"sync"

	"github.com/lumka-2025/queue-hero/internal/obs"
)

const subscriberBuffer = 16

// Hub is the in-process half of the real-time transport: a topic-keyed
// subscriber registry with non-blocking delivery. A subscriber that falls
// behind its buffer misses events and is expected to re-fetch state, the same
// contract a disconnected socket client lives under.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]map[*Subscription]struct{}
	metrics *obs.Metrics
}

func NewHub(metrics *obs.Metrics) *Hub {
	return &Hub{
		subs:    make(map[string]map[*Subscription]struct{}),
		metrics: metrics,
	}
}

// Subscription receives events for a single topic until Close is called.
type Subscription struct {
	topic string
	ch    chan Event
	hub   *Hub
	once  sync.Once
}

// Events is the receive stream. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

func (s *Subscription) Topic() string {
	return s.topic
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.ch)
	})
}

func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan Event, subscriberBuffer),
		hub:   h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[topic] = set
	}
	set[sub] = struct{}{}
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.topic]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.topic)
	}
}

// Publish delivers evt to every current subscriber of topic without blocking.
func (h *Hub) Publish(_ context.Context, topic string, evt Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[topic] {
		select {
		case sub.ch <- evt:
		default:
			h.metrics.EventDropped()
		}
	}
	return nil
}

// SubscriberCount reports live subscriptions for a topic (tests, debugging).
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
