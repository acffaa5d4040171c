// Package live pushes bracket state changes to connected scoreboard and
// judge clients over websockets. Clients join the room of one category
// and receive every regeneration, result save and round advancement.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

type EventType string

const (
	EventBracketRegenerated EventType = "BRACKET_REGENERATED"
	EventMatchResultSaved   EventType = "MATCH_RESULT_SAVED"
	EventRoundAdvanced      EventType = "ROUND_ADVANCED"
)

// Event is the wire format pushed to every client in a category room.
type Event struct {
	Type       EventType   `json:"type"`
	CategoryID int         `json:"category_id"`
	Payload    interface{} `json:"payload,omitempty"`
}

type Hub struct {
	register   chan *Client
	unregister chan *Client

	rooms map[int]map[*Client]bool
	mu    sync.RWMutex

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[int]map[*Client]bool),
		logger:     logger,
	}
}

// Run owns room membership. Call it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.categoryID]; !ok {
				h.rooms[client.categoryID] = make(map[*Client]bool)
			}
			h.rooms[client.categoryID][client] = true
			h.logger.Info("live client joined",
				slog.Int("category_id", client.categoryID),
				slog.Int("room_size", len(h.rooms[client.categoryID])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.categoryID]; ok {
				if _, inRoom := room[client]; inRoom {
					client.closeSend()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.categoryID)
					}
				}
			}
			h.logger.Info("live client left", slog.Int("category_id", client.categoryID))
			h.mu.Unlock()
		}
	}
}

// BroadcastCategory fans an event out to every client in the category's
// room. A client with a full send buffer is skipped, not blocked on.
func (h *Hub) BroadcastCategory(categoryID int, eventType EventType, payload interface{}) {
	event := Event{Type: eventType, CategoryID: categoryID, Payload: payload}
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal live event",
			slog.String("type", string(eventType)), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[categoryID] {
		client.trySend(data)
	}
}
