package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxCommentLength = 2000

type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	Edited  bool      `json:"edited" db:"-"`
	Replies []Comment `json:"replies" db:"-"`
}

func (c *Comment) IsDeleted() bool {
	return c.DeletedAt != nil
}

// VisibleTo reports whether the viewer may see this comment in the general
// feed: alive comments are visible to everyone, soft-deleted comments only
// to their author.
func (c *Comment) VisibleTo(viewerID *uuid.UUID) bool {
	if !c.IsDeleted() {
		return true
	}
	return viewerID != nil && *viewerID == c.AuthorID
}

type CommentSummary struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *Comment) Summary() *CommentSummary {
	return &CommentSummary{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

type CreateCommentInput struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Content  string     `json:"content"`
}

type UpdateCommentInput struct {
	Content string `json:"content"`
}

// OwnComments is the author's view of their own comments: alive ones plus
// soft-deleted ones still inside the restore window. Deleted comments past
// the window appear in neither partition.
type OwnComments struct {
	Active          []Comment `json:"active"`
	Restorable      []Comment `json:"restorable"`
	ActiveCount     int       `json:"active_count"`
	RestorableCount int       `json:"restorable_count"`
}
