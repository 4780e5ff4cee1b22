package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Comment      CommentRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Comment:      NewCommentRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
