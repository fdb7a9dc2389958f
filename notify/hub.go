package notify

import (
	"sync"
)

// Event is the fixed-shape message pushed to subscribers. Type distinguishes
// menu updates from any future signal sharing the stream.
type Event struct {
	Type string `json:"type"`
}

// UpdateEvent tells a subscriber its cached menu data for the restaurant is
// stale and must be refetched.
var UpdateEvent = Event{Type: "update"}

const subscriberBuffer = 8

// Hub is a subscriber registry keyed by restaurant id. Publishing is
// best-effort: a subscriber whose buffer is full misses the event, and a
// client that missed one refetches current state on reconnect anyway.
type Hub struct {
	mu   sync.Mutex
	subs map[uint]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for one restaurant's changes. The returned
// cancel func must be called when the connection closes; it is safe to call
// more than once.
func (h *Hub) Subscribe(restaurantID uint) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[restaurantID] == nil {
		h.subs[restaurantID] = make(map[chan Event]struct{})
	}
	h.subs[restaurantID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[restaurantID], ch)
			if len(h.subs[restaurantID]) == 0 {
				delete(h.subs, restaurantID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every open subscription for the restaurant
// without blocking. Mutations never wait on delivery.
func (h *Hub) Publish(restaurantID uint, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[restaurantID] {
		select {
		case ch <- ev:
		default:
			// slow subscriber, drop; it refetches on next event or reconnect
		}
	}
}

// Subscribers reports the number of open subscriptions for a restaurant.
func (h *Hub) Subscribers(restaurantID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[restaurantID])
}
