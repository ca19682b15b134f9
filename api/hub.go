package api

import (
	"sync"

	"github.com/battlesnakeio/snake/controller"
)

const subscriberBuffer = 16

// Hub fans rendered frames out to websocket subscribers. A subscriber that
// falls behind misses frames instead of stalling the game.
type Hub struct {
	mu   sync.Mutex
	subs map[chan controller.Frame]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: map[chan controller.Frame]struct{}{}}
}

// Render implements controller.Renderer.
func (h *Hub) Render(f controller.Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- f:
		default:
		}
	}
	return nil
}

// Subscribe registers a new frame channel.
func (h *Hub) Subscribe() chan controller.Frame {
	ch := make(chan controller.Frame, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()

	h.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a channel returned by Subscribe.
func (h *Hub) Unsubscribe(ch chan controller.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, ch)
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}
