package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

// UnitOfWork is the commit boundary used by every command. Satisfied by
// *events.UnitOfWork; abstracted here for dependency injection and mocking
// in tests.
type UnitOfWork interface {
	Commit(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error, aggregates ...domain.Aggregate) error
}

// ArticleServiceInterface defines article commands and reads.
// Used for dependency injection and mocking in tests.
type ArticleServiceInterface interface {
	CreateDraft(ctx context.Context, in CreateDraftInput) (*domain.Article, error)
	Publish(ctx context.Context, articleID, actorID string) (*domain.Article, error)
	Unpublish(ctx context.Context, articleID, actorID string) (*domain.Article, error)
	UpdateContent(ctx context.Context, articleID, actorID string, in UpdateContentInput) (*domain.Article, error)
	SetFeaturedImage(ctx context.Context, articleID, actorID, imageURL string) (*domain.Article, error)
	RemoveFeaturedImage(ctx context.Context, articleID, actorID string) (*domain.Article, error)
	AddTag(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error)
	RemoveTag(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error)
	UpdateTags(ctx context.Context, articleID, actorID string, tagIDs []string) (*domain.Article, error)
	Delete(ctx context.Context, articleID, actorID string) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
}

// CommentServiceInterface defines comment commands and reads.
type CommentServiceInterface interface {
	Create(ctx context.Context, articleID, authorID, content string) (*domain.Comment, error)
	CreateReply(ctx context.Context, articleID, parentID, authorID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID, actorID string) error
	ListByArticle(ctx context.Context, articleID string) ([]domain.Comment, error)
	ListReplies(ctx context.Context, parentID string) ([]domain.Comment, error)
}

// ReactionServiceInterface defines clap commands and reads.
type ReactionServiceInterface interface {
	AddClaps(ctx context.Context, articleID, userID string, count int) (*domain.Reaction, error)
	TotalClapsForArticle(ctx context.Context, articleID string) (int, error)
	UserClaps(ctx context.Context, articleID, userID string) (*domain.Reaction, error)
}

// NotificationServiceInterface defines notification reads and read-marking.
type NotificationServiceInterface interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
