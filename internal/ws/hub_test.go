package ws

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"threadbox/internal/domain"
)

func drain(c *Client) []domain.Event {
	var events []domain.Event
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestSendToUserReachesEveryConnection(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	const n = 8
	clients := make([]*Client, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		clients[i] = NewClient(nil)
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			hub.Register(userID, c)
		}(clients[i])
	}
	wg.Wait()

	assert.Equal(t, n, hub.ConnectionCount(userID))

	hub.SendToUser(userID, domain.Event{Type: domain.EventNewNotification})
	for _, c := range clients {
		events := drain(c)
		assert.Len(t, events, 1)
		assert.Equal(t, domain.EventNewNotification, events[0].Type)
	}
}

func TestUnregisterLeavesRemainingConnections(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	first := NewClient(nil)
	second := NewClient(nil)
	third := NewClient(nil)
	hub.Register(userID, first)
	hub.Register(userID, second)
	hub.Register(userID, third)

	hub.Unregister(second)
	assert.Equal(t, 2, hub.ConnectionCount(userID))

	hub.SendToUser(userID, domain.Event{Type: domain.EventNotificationUpdated})
	assert.Len(t, drain(first), 1)
	assert.Len(t, drain(third), 1)
	assert.Empty(t, drain(second))
}

func TestLastDisconnectDropsUserEntry(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := NewClient(nil)
	hub.Register(userID, client)
	hub.Unregister(client)

	assert.Equal(t, 0, hub.ConnectionCount(userID))
	_, present := hub.clients[userID]
	assert.False(t, present, "empty set must be dropped, not left dangling")

	// Sending to a user with no connections is a silent drop.
	hub.SendToUser(userID, domain.Event{Type: domain.EventNewNotification})
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := NewClient(nil)
	hub.Register(userID, client)
	hub.Unregister(client)
	hub.Unregister(client)

	assert.Equal(t, 0, hub.ConnectionCount(userID))
}

func TestSendToOtherUserDoesNotLeak(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()
	bob := uuid.New()

	aliceClient := NewClient(nil)
	bobClient := NewClient(nil)
	hub.Register(alice, aliceClient)
	hub.Register(bob, bobClient)

	hub.SendToUser(alice, domain.Event{Type: domain.EventNewNotification})

	assert.Len(t, drain(aliceClient), 1)
	assert.Empty(t, drain(bobClient))
}

func TestFullSendBufferDropsWithoutBlocking(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := NewClient(nil)
	hub.Register(userID, client)

	for i := 0; i < sendBufferSize+5; i++ {
		hub.SendToUser(userID, domain.Event{Type: domain.EventNewNotification})
	}

	assert.Len(t, drain(client), sendBufferSize)
}

func TestConcurrentChurn(t *testing.T) {
	hub := NewHub()
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, userID := range users {
			wg.Add(1)
			go func(userID uuid.UUID) {
				defer wg.Done()
				client := NewClient(nil)
				hub.Register(userID, client)
				hub.SendToUser(userID, domain.Event{Type: domain.EventNewNotification})
				hub.Unregister(client)
			}(userID)
		}
	}
	wg.Wait()

	for _, userID := range users {
		assert.Equal(t, 0, hub.ConnectionCount(userID))
	}
}
