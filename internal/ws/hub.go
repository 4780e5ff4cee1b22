// Package ws holds the live-connection registry. It is the only place the
// process keeps connection state; nothing here is persisted, so a restart
// drops every session and clients must re-handshake.
package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"threadbox/internal/domain"
)

// Hub maps authenticated user ids to their open connections. Many clients
// may belong to one user (multi-device). All access goes through the
// mutex-guarded methods so an insertion or removal appears atomic to any
// concurrent SendToUser.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
	}
}

// Register joins a client to the user's logical channel. The caller must
// have already verified the user's credential.
func (h *Hub) Register(userID uuid.UUID, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.userID = userID
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[userID] = set
	}
	set[client] = struct{}{}
}

// Unregister removes the client and drops the user entry when its set
// empties. Safe to call more than once for the same client.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	client.closeSend()
}

// SendToUser pushes the event to every connection the user currently holds.
// No connections means the event is dropped: delivery is best-effort and
// at-most-once per connected session. Enqueueing is non-blocking; a client
// whose send buffer is full misses the event.
func (h *Hub) SendToUser(userID uuid.UUID, event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.clients[userID]
	if len(set) == 0 {
		return
	}
	for client := range set {
		if !client.trySend(event) {
			log.Printf("ws: dropped %s event for user %s: send buffer full", event.Type, userID)
		}
	}
}

// ConnectionCount reports how many live connections the user holds.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
