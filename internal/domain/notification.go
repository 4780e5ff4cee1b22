package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID `json:"id" db:"id"`
	RecipientID uuid.UUID `json:"recipient_id" db:"recipient_id"`
	CommentID   uuid.UUID `json:"comment_id" db:"comment_id"`
	IsRead      bool      `json:"is_read" db:"is_read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Comment *CommentSummary `json:"comment,omitempty" db:"-"`
}

type ToggleNotificationInput struct {
	IsRead bool `json:"is_read"`
}
