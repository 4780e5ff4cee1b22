package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"threadbox/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetForRecipient(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, comment_id)
		VALUES ($1, $2, $3)
		RETURNING is_read, created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientID, notif.CommentID,
	).Scan(&notif.IsRead, &notif.CreatedAt)
}

func (r *notificationRepository) GetForRecipient(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT id, recipient_id, comment_id, is_read, created_at
		FROM notifications WHERE id = $1 AND recipient_id = $2`
	err := r.db.GetContext(ctx, &notif, query, id, recipientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	filter := `WHERE n.recipient_id = $1`
	if unreadOnly {
		filter += ` AND n.is_read = false`
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications n ` + filter
	if err := r.db.GetContext(ctx, &total, countQuery, recipientID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			n.id, n.recipient_id, n.comment_id, n.is_read, n.created_at,
			c.id AS reply_id, c.author_id, c.parent_id, c.content, c.created_at AS reply_created_at
		FROM notifications n
		INNER JOIN comments c ON n.comment_id = c.id
		` + filter + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, recipientID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var reply domain.CommentSummary
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.CommentID, &n.IsRead, &n.CreatedAt,
			&reply.ID, &reply.AuthorID, &reply.ParentID, &reply.Content, &reply.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		n.Comment = &reply
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

func (r *notificationRepository) SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*domain.Notification, error) {
	var notif domain.Notification
	query := `
		UPDATE notifications SET is_read = $2
		WHERE id = $1
		RETURNING id, recipient_id, comment_id, is_read, created_at`

	err := r.db.QueryRowxContext(ctx, query, id, isRead).StructScan(&notif)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, recipientID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}
