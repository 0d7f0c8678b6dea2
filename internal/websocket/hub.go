package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"admin-console/internal/event"
)

// SearchFunc receives live-search keystrokes sent by browsers.
type SearchFunc func(page string, value string)

type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Event bus to listen for events
	bus event.Bus

	onSearch SearchFunc
	done     chan struct{}
}

func NewHub(bus event.Bus, onSearch SearchFunc) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		bus:        bus,
		onSearch:   onSearch,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			slog.Debug("ws client connected", "client_id", client.id, "total", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				slog.Debug("ws client disconnected", "client_id", client.id, "total", len(h.clients))
			}
		case e, ok := <-events:
			if !ok {
				return
			}
			message, err := json.Marshal(e)
			if err != nil {
				slog.Error("failed to marshal event", "error", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// inbound is a browser message.
type inbound struct {
	Type  string `json:"type"`
	Page  string `json:"page"`
	Value string `json:"value"`
}

func (h *Hub) dispatch(client *Client, raw []byte) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		slog.Debug("ignoring malformed ws message", "client_id", client.id, "error", err)
		return
	}

	switch msg.Type {
	case "search":
		if h.onSearch != nil {
			h.onSearch(msg.Page, msg.Value)
		}
	default:
		slog.Debug("ignoring ws message", "client_id", client.id, "type", msg.Type)
	}
}
