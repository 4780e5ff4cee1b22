package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"threadbox/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// UpdateContent, SoftDelete and Restore are conditional writes: the
	// ownership, liveness and window predicates are re-evaluated inside the
	// UPDATE itself so two requests straddling the window boundary cannot
	// both succeed. They return nil when no row matched.
	UpdateContent(ctx context.Context, id, authorID uuid.UUID, content string, createdAfter time.Time) (*domain.Comment, error)
	SoftDelete(ctx context.Context, id, authorID uuid.UUID, createdAfter time.Time) (*domain.Comment, error)
	Restore(ctx context.Context, id, authorID uuid.UUID, deletedAfter time.Time) (*domain.Comment, error)

	ListAll(ctx context.Context) ([]domain.Comment, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Comment, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, author_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.AuthorID, comment.ParentID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT id, author_id, parent_id, content, created_at, updated_at, deleted_at
		FROM comments WHERE id = $1`
	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, authorID uuid.UUID, content string, createdAfter time.Time) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET content = $3, updated_at = NOW()
		WHERE id = $1 AND author_id = $2 AND deleted_at IS NULL AND created_at >= $4
		RETURNING id, author_id, parent_id, content, created_at, updated_at, deleted_at`

	return r.scanRow(r.db.QueryRowxContext(ctx, query, id, authorID, content, createdAfter))
}

func (r *commentRepository) SoftDelete(ctx context.Context, id, authorID uuid.UUID, createdAfter time.Time) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET deleted_at = NOW()
		WHERE id = $1 AND author_id = $2 AND deleted_at IS NULL AND created_at >= $3
		RETURNING id, author_id, parent_id, content, created_at, updated_at, deleted_at`

	return r.scanRow(r.db.QueryRowxContext(ctx, query, id, authorID, createdAfter))
}

func (r *commentRepository) Restore(ctx context.Context, id, authorID uuid.UUID, deletedAfter time.Time) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET deleted_at = NULL
		WHERE id = $1 AND author_id = $2 AND deleted_at IS NOT NULL AND deleted_at >= $3
		RETURNING id, author_id, parent_id, content, created_at, updated_at, deleted_at`

	return r.scanRow(r.db.QueryRowxContext(ctx, query, id, authorID, deletedAfter))
}

func (r *commentRepository) scanRow(row *sqlx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	err := row.StructScan(&comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	var comments []domain.Comment
	query := `SELECT id, author_id, parent_id, content, created_at, updated_at, deleted_at
		FROM comments ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &comments, query)
	return comments, err
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Comment, error) {
	var comments []domain.Comment
	query := `SELECT id, author_id, parent_id, content, created_at, updated_at, deleted_at
		FROM comments WHERE author_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &comments, query, authorID)
	return comments, err
}
