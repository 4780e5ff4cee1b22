package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"threadbox/internal/domain"
	"threadbox/internal/repository"
)

// Sender delivers an event to all live connections of one user. Satisfied
// by ws.Hub.
type Sender interface {
	SendToUser(userID uuid.UUID, event domain.Event)
}

type Service interface {
	// NotifyOnReply records a notification for the parent comment's author
	// and pushes it to their live connections. Self-replies never notify.
	NotifyOnReply(ctx context.Context, parent, reply *domain.Comment) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	Toggle(ctx context.Context, id, userID uuid.UUID, isRead bool) (*domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	sender    Sender
}

func NewService(notifRepo repository.NotificationRepository, sender Sender) Service {
	return &service{
		notifRepo: notifRepo,
		sender:    sender,
	}
}

func (s *service) NotifyOnReply(ctx context.Context, parent, reply *domain.Comment) error {
	if parent.AuthorID == reply.AuthorID {
		return nil
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: parent.AuthorID,
		CommentID:   reply.ID,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	// The notification is committed at this point; a recipient with no live
	// connections simply misses the push and finds it via List.
	notif.Comment = reply.Summary()
	s.sender.SendToUser(notif.RecipientID, domain.Event{
		Type:    domain.EventNewNotification,
		Payload: notif,
	})

	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByRecipient(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) Toggle(ctx context.Context, id, userID uuid.UUID, isRead bool) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetForRecipient(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if notif == nil {
		return nil, domain.NotFound("notification not found")
	}

	updated, err := s.notifRepo.SetRead(ctx, id, isRead)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound("notification not found")
	}

	// Other devices of the same user converge on the new read state.
	s.sender.SendToUser(userID, domain.Event{
		Type:    domain.EventNotificationUpdated,
		Payload: updated,
	})

	return updated, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}
