package comment

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"threadbox/internal/config"
	"threadbox/internal/domain"
	"threadbox/internal/repository"
	"threadbox/internal/service/notification"
)

const treeCacheKey = "comments:tree"

type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	Edit(ctx context.Context, requesterID, id uuid.UUID, input domain.UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, requesterID, id uuid.UUID) error
	Restore(ctx context.Context, requesterID, id uuid.UUID) (*domain.Comment, error)
	ListTree(ctx context.Context, viewerID *uuid.UUID) ([]domain.Comment, error)
	ListOwn(ctx context.Context, authorID uuid.UUID) (*domain.OwnComments, error)
	SetNotificationService(svc notification.Service)
}

type service struct {
	commentRepo   repository.CommentRepository
	redis         *redis.Client
	notifSvc      notification.Service
	editWindow    time.Duration
	restoreWindow time.Duration
	cacheTTL      time.Duration
}

func NewService(commentRepo repository.CommentRepository, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		commentRepo:   commentRepo,
		redis:         redisClient,
		editWindow:    cfg.CommentEditWindow,
		restoreWindow: cfg.CommentRestoreWindow,
		cacheTTL:      cfg.TreeCacheTTL,
	}
}

func (s *service) SetNotificationService(svc notification.Service) {
	s.notifSvc = svc
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	// Replies to a comment that no longer exists are rejected rather than
	// silently created as top-level. Replying to a soft-deleted comment is
	// allowed; only a hard-missing parent fails.
	var parent *domain.Comment
	if input.ParentID != nil {
		var err error
		parent, err = s.commentRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.NotFound("parent comment not found")
		}
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		AuthorID: authorID,
		ParentID: input.ParentID,
		Content:  content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateTreeCache(ctx)

	if parent != nil && parent.AuthorID != authorID && s.notifSvc != nil {
		// The comment is already committed; a fanout failure is logged,
		// never surfaced to the creating caller.
		if err := s.notifSvc.NotifyOnReply(ctx, parent, comment); err != nil {
			log.Printf("reply notification for comment %s failed: %v", comment.ID, err)
		}
	}

	return comment, nil
}

func (s *service) Edit(ctx context.Context, requesterID, id uuid.UUID, input domain.UpdateCommentInput) (*domain.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.IsDeleted() {
		return nil, domain.NotFound("comment not found")
	}
	if comment.AuthorID != requesterID {
		return nil, domain.Forbidden("only the author may edit this comment")
	}
	if time.Since(comment.CreatedAt) > s.editWindow {
		return nil, domain.Forbidden("edit window expired")
	}

	// The window is re-checked inside the conditional update; a zero-row
	// result means the window closed between the read and the write.
	updated, err := s.commentRepo.UpdateContent(ctx, id, requesterID, content, time.Now().Add(-s.editWindow))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.Forbidden("edit window expired")
	}

	s.invalidateTreeCache(ctx)

	updated.Edited = !updated.UpdatedAt.Equal(updated.CreatedAt)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil || comment.IsDeleted() {
		return domain.NotFound("comment not found")
	}
	if comment.AuthorID != requesterID {
		return domain.Forbidden("only the author may delete this comment")
	}
	if time.Since(comment.CreatedAt) > s.editWindow {
		return domain.Forbidden("delete window expired")
	}

	deleted, err := s.commentRepo.SoftDelete(ctx, id, requesterID, time.Now().Add(-s.editWindow))
	if err != nil {
		return err
	}
	if deleted == nil {
		return domain.Forbidden("delete window expired")
	}

	s.invalidateTreeCache(ctx)
	return nil
}

func (s *service) Restore(ctx context.Context, requesterID, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Wrong owner and not-deleted both read as absence; the restore window
	// is the only condition reported as Forbidden.
	if comment == nil || comment.AuthorID != requesterID || !comment.IsDeleted() {
		return nil, domain.NotFound("comment not found or not deleted")
	}
	if time.Since(*comment.DeletedAt) > s.restoreWindow {
		return nil, domain.Forbidden("restore window expired")
	}

	restored, err := s.commentRepo.Restore(ctx, id, requesterID, time.Now().Add(-s.restoreWindow))
	if err != nil {
		return nil, err
	}
	if restored == nil {
		return nil, domain.Forbidden("restore window expired")
	}

	s.invalidateTreeCache(ctx)
	return restored, nil
}

func (s *service) ListTree(ctx context.Context, viewerID *uuid.UUID) ([]domain.Comment, error) {
	// Only the anonymous tree is cacheable; a viewer's tree depends on
	// which of their own deleted comments are still visible to them.
	if viewerID == nil && s.redis != nil {
		if cached, err := s.redis.Get(ctx, treeCacheKey).Result(); err == nil {
			var tree []domain.Comment
			if json.Unmarshal([]byte(cached), &tree) == nil {
				return tree, nil
			}
		}
	}

	all, err := s.commentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.Comment, 0, len(all))
	for _, c := range all {
		if c.VisibleTo(viewerID) {
			visible = append(visible, c)
		}
	}

	tree := buildTree(visible)

	if viewerID == nil && s.redis != nil {
		if data, err := json.Marshal(tree); err == nil {
			_ = s.redis.Set(ctx, treeCacheKey, data, s.cacheTTL).Err()
		}
	}

	return tree, nil
}

func (s *service) ListOwn(ctx context.Context, authorID uuid.UUID) (*domain.OwnComments, error) {
	all, err := s.commentRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	own := &domain.OwnComments{
		Active:     []domain.Comment{},
		Restorable: []domain.Comment{},
	}
	for _, c := range all {
		c.Edited = !c.UpdatedAt.Equal(c.CreatedAt)
		switch {
		case !c.IsDeleted():
			own.Active = append(own.Active, c)
		case now.Sub(*c.DeletedAt) <= s.restoreWindow:
			own.Restorable = append(own.Restorable, c)
		}
		// Deleted past the restore window: retained in storage but gone
		// from this view.
	}

	sort.Slice(own.Active, func(i, j int) bool {
		return own.Active[i].CreatedAt.After(own.Active[j].CreatedAt)
	})
	sort.Slice(own.Restorable, func(i, j int) bool {
		return own.Restorable[i].DeletedAt.After(*own.Restorable[j].DeletedAt)
	})

	own.ActiveCount = len(own.Active)
	own.RestorableCount = len(own.Restorable)
	return own, nil
}

func (s *service) invalidateTreeCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, treeCacheKey).Err()
	}
}

func validateContent(content string) error {
	if content == "" {
		return domain.InvalidInput("content must not be empty")
	}
	if len(content) > domain.MaxCommentLength {
		return domain.InvalidInput("content exceeds maximum length")
	}
	return nil
}

// buildTree assembles the visible comments into a forest. A child index is
// built in one pass and the descent keeps a visited set so a malformed
// parent chain cannot loop.
func buildTree(comments []domain.Comment) []domain.Comment {
	byParent := make(map[uuid.UUID][]domain.Comment)
	var roots []domain.Comment
	for _, c := range comments {
		c.Edited = !c.UpdatedAt.Equal(c.CreatedAt)
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	visited := make(map[uuid.UUID]bool, len(comments))
	tree := make([]domain.Comment, 0, len(roots))
	sortByCreated(roots)
	for _, root := range roots {
		tree = append(tree, attachReplies(root, byParent, visited))
	}
	return tree
}

func attachReplies(c domain.Comment, byParent map[uuid.UUID][]domain.Comment, visited map[uuid.UUID]bool) domain.Comment {
	visited[c.ID] = true

	children := byParent[c.ID]
	sortByCreated(children)

	c.Replies = make([]domain.Comment, 0, len(children))
	for _, child := range children {
		if visited[child.ID] {
			continue
		}
		c.Replies = append(c.Replies, attachReplies(child, byParent, visited))
	}
	return c
}

func sortByCreated(comments []domain.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}
