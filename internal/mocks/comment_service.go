package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"threadbox/internal/domain"
	"threadbox/internal/service/notification"
)

type CommentService struct {
	mock.Mock
}

func (m *CommentService) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, authorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) Edit(ctx context.Context, requesterID, id uuid.UUID, input domain.UpdateCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, requesterID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	args := m.Called(ctx, requesterID, id)
	return args.Error(0)
}

func (m *CommentService) Restore(ctx context.Context, requesterID, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, requesterID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) ListTree(ctx context.Context, viewerID *uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentService) ListOwn(ctx context.Context, authorID uuid.UUID) (*domain.OwnComments, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnComments), args.Error(1)
}

func (m *CommentService) SetNotificationService(svc notification.Service) {}
