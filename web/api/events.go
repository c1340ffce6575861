package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
)

// Event is pushed to clients when a run completes.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// EventHub fans events out to subscriber channels. Both the SSE and the
// websocket handlers subscribe to it.
type EventHub struct {
	clients    map[chan Event]bool
	broadcast  chan Event
	register   chan chan Event
	unregister chan chan Event
	mu         sync.RWMutex
}

// NewEventHub creates a new hub
func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[chan Event]bool),
		broadcast:  make(chan Event),
		register:   make(chan chan Event),
		unregister: make(chan chan Event),
	}
}

// Run starts the hub loop
func (h *EventHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client <- event:
				default:
					// Slow client, drop it.
					close(client)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to all subscribers
func (h *EventHub) Broadcast(event Event) {
	h.broadcast <- event
}

// Subscribe registers a new client channel.
func (h *EventHub) Subscribe() chan Event {
	client := make(chan Event, 8)
	h.register <- client
	return client
}

// Unsubscribe removes a client channel.
func (h *EventHub) Unsubscribe(client chan Event) {
	h.unregister <- client
}

func (s *Server) sseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		client := s.hub.Subscribe()
		defer s.hub.Unsubscribe(client)

		for {
			select {
			case <-r.Context().Done():
				return
			case event, ok := <-client:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
				flusher.Flush()
			}
		}
	}
}

func (s *Server) wsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		client := s.hub.Subscribe()
		defer s.hub.Unsubscribe(client)

		// Drain incoming frames; the stream is one-way but reads surface
		// close frames.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for event := range client {
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("ws write: %v", err)
				return
			}
		}
	}
}
