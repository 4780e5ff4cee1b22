package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"threadbox/internal/domain"
)

type EventSender struct {
	mock.Mock
}

func (m *EventSender) SendToUser(userID uuid.UUID, event domain.Event) {
	m.Called(userID, event)
}
