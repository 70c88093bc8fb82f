package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// subscriberBuffer bounds each subscriber queue; full queues drop changes.
const subscriberBuffer = 16

// BroadcastHook fans state changes out to in-process subscribers such as
// SSE and WebSocket streams.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan StateChange
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]chan StateChange),
	}
}

// StateChanged satisfies StateListener and broadcasts the change without
// blocking the dispatching goroutine.
func (h *BroadcastHook) StateChanged(_ context.Context, change StateChange) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- change:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of state changes and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan StateChange, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan StateChange, subscriberBuffer)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of active subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// upgrader keeps the default origin check: cross-origin handshakes get 403.
var upgrader = websocket.Upgrader{}

// ServeWebSocket upgrades the request and streams state changes as JSON.
// A failed upgrade has already been answered by the upgrader.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(change); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for state changes.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case change, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\n", change.Event)
			w.Write([]byte("data: "))
			if err := encoder.Encode(change); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
