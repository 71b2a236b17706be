package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/metrics"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
	"github.com/rokasce/medium-clone-sub000/internal/validator"
)

// CommentService executes comment commands. Ownership of a comment is
// checked here, never inside the aggregate.
type CommentService struct {
	comments  repository.CommentRepository
	articles  repository.ArticleRepository
	uow       UnitOfWork
	validator *validator.Validator
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, uow UnitOfWork, v *validator.Validator) *CommentService {
	return &CommentService{comments: comments, articles: articles, uow: uow, validator: v}
}

// Create adds a root comment to an article.
func (s *CommentService) Create(ctx context.Context, articleID, authorID, content string) (*domain.Comment, error) {
	if err := s.validator.ValidateCommentContent(content); err != nil {
		return nil, observeComment("create", err)
	}
	if err := s.articleExists(ctx, articleID); err != nil {
		return nil, observeComment("create", err)
	}

	c := domain.NewComment(articleID, authorID, content)
	err := s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.comments.Insert(ctx, tx, c)
	}, c)
	if err != nil {
		return nil, observeComment("create", fmt.Errorf("create comment: %w", err))
	}
	return c, observeComment("create", nil)
}

// CreateReply adds a reply under a root comment. The parent must belong to
// the given article and must itself be a root; replying to a reply fails
// with nesting_too_deep.
func (s *CommentService) CreateReply(ctx context.Context, articleID, parentID, authorID, content string) (*domain.Comment, error) {
	if err := s.validator.ValidateCommentContent(content); err != nil {
		return nil, observeComment("create_reply", err)
	}

	parent, err := s.comments.GetByID(ctx, parentID)
	if err != nil {
		return nil, observeComment("create_reply", err)
	}
	if parent == nil || parent.ArticleID != articleID || parent.Status == domain.CommentDeleted {
		return nil, observeComment("create_reply", domain.ErrCommentNotFound)
	}

	c, err := domain.NewReply(parent, authorID, content)
	if err != nil {
		return nil, observeComment("create_reply", err)
	}

	err = s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.comments.Insert(ctx, tx, c)
	}, c)
	if err != nil {
		return nil, observeComment("create_reply", fmt.Errorf("create reply: %w", err))
	}
	return c, observeComment("create_reply", nil)
}

// Delete soft-deletes a comment after verifying the actor owns it.
func (s *CommentService) Delete(ctx context.Context, commentID, actorID string) error {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return observeComment("delete", err)
	}
	if c == nil {
		return observeComment("delete", domain.ErrCommentNotFound)
	}
	if c.AuthorID != actorID {
		return observeComment("delete", domain.ErrNotCommentAuthor)
	}

	c.Delete()
	if len(c.PendingEvents()) == 0 {
		return observeComment("delete", nil)
	}

	err = s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.comments.Update(ctx, tx, c)
	}, c)
	if err != nil {
		return observeComment("delete", fmt.Errorf("delete comment: %w", err))
	}
	return observeComment("delete", nil)
}

// ListByArticle returns the article's root comments.
func (s *CommentService) ListByArticle(ctx context.Context, articleID string) ([]domain.Comment, error) {
	return s.comments.ListRoots(ctx, articleID)
}

// ListReplies returns the flat reply list under a root comment.
func (s *CommentService) ListReplies(ctx context.Context, parentID string) ([]domain.Comment, error) {
	return s.comments.ListReplies(ctx, parentID)
}

func (s *CommentService) articleExists(ctx context.Context, articleID string) error {
	a, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if a == nil || a.Status == domain.StatusDeleted {
		return domain.ErrArticleNotFound
	}
	return nil
}

func observeComment(command string, err error) error {
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.DomainCommandsTotal.WithLabelValues("comment", command, result).Inc()
	return err
}
