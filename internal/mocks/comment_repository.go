package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"threadbox/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) UpdateContent(ctx context.Context, id, authorID uuid.UUID, content string, createdAfter time.Time) (*domain.Comment, error) {
	args := m.Called(ctx, id, authorID, content, createdAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) SoftDelete(ctx context.Context, id, authorID uuid.UUID, createdAfter time.Time) (*domain.Comment, error) {
	args := m.Called(ctx, id, authorID, createdAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) Restore(ctx context.Context, id, authorID uuid.UUID, deletedAfter time.Time) (*domain.Comment, error) {
	args := m.Called(ctx, id, authorID, deletedAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}
