package domain

type EventType string

const (
	EventConnected           EventType = "connected"
	EventNewNotification     EventType = "newNotification"
	EventNotificationUpdated EventType = "notificationUpdated"
	EventPong                EventType = "pong"
	EventError               EventType = "error"
)

// Event is the envelope pushed to live websocket connections.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}
