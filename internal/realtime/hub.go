// Package realtime implements the change-notification side of reactive
// queries: every committed write publishes the index-key topics it affects,
// and each subscriber of a matching topic is nudged to re-deliver the full
// current result set of its query.
package realtime

import (
	"sync"
)

// Publisher is the write-side contract services use to announce changes.
type Publisher interface {
	Publish(topics ...string)
}

// Subscriber receives topic names on C when any of its topics is published.
// Notifications are coalesced, not queued: a slow subscriber misses
// intermediate nudges but always re-queries, so it never misses state.
type Subscriber struct {
	ch     chan string
	topics map[string]struct{}
	closed bool
}

// C is the notification channel. It carries the published topic name.
func (s *Subscriber) C() <-chan string { return s.ch }

// Hub is a topic-keyed subscriber registry.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

var _ Publisher = (*Hub)(nil)

// NewSubscriber registers a subscriber with no topics yet.
func (h *Hub) NewSubscriber() *Subscriber {
	return &Subscriber{
		ch:     make(chan string, 16),
		topics: make(map[string]struct{}),
	}
}

// Add subscribes s to a topic. Adding to a removed subscriber is a no-op:
// a connection's read side may race its own teardown, and a dead subscriber
// must never re-enter the registry with a closed channel.
func (h *Hub) Add(s *Subscriber, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return
	}
	if _, ok := h.subs[topic]; !ok {
		h.subs[topic] = make(map[*Subscriber]struct{})
	}
	h.subs[topic][s] = struct{}{}
	s.topics[topic] = struct{}{}
}

// Remove drops s from every topic and closes its channel. Safe to call once;
// later Add calls on s do nothing.
func (h *Hub) Remove(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for topic := range s.topics {
		delete(h.subs[topic], s)
		if len(h.subs[topic]) == 0 {
			delete(h.subs, topic)
		}
	}
	s.topics = make(map[string]struct{})
	close(s.ch)
}

// Publish notifies every subscriber of each topic. Sends never block; a
// subscriber whose buffer is full already has a pending nudge.
func (h *Hub) Publish(topics ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, topic := range topics {
		for s := range h.subs[topic] {
			select {
			case s.ch <- topic:
			default:
			}
		}
	}
}
