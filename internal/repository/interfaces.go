package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx. Write
// methods take it explicitly so the unit of work can stage every mutation
// of a command inside one transaction; read methods use the repository's
// own pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ArticleRepository defines article data access. Lookups return (nil, nil)
// when no row exists.
type ArticleRepository interface {
	Insert(ctx context.Context, db DBTX, a *domain.Article) error
	Update(ctx context.Context, db DBTX, a *domain.Article) error
	InsertRevision(ctx context.Context, db DBTX, rev domain.ArticleRevision) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
}

// CommentRepository defines comment data access. Replies are a flat
// parent-filtered query, never an in-memory collection on the parent.
type CommentRepository interface {
	Insert(ctx context.Context, db DBTX, c *domain.Comment) error
	Update(ctx context.Context, db DBTX, c *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListRoots(ctx context.Context, articleID string) ([]domain.Comment, error)
	ListReplies(ctx context.Context, parentID string) ([]domain.Comment, error)
}

// ReactionRepository defines clap-counter data access. UpdateCAS applies
// the aggregate's new state only when the stored version is exactly one
// behind, returning domain.ErrConcurrentUpdate otherwise.
type ReactionRepository interface {
	GetByArticleAndUser(ctx context.Context, articleID, userID string) (*domain.Reaction, error)
	Insert(ctx context.Context, db DBTX, r *domain.Reaction) error
	UpdateCAS(ctx context.Context, db DBTX, r *domain.Reaction) error
	TotalForArticle(ctx context.Context, articleID string) (int, error)
}

// NotificationRepository defines notification data access. Insert dedupes
// by event id so redelivered events cannot double-notify.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

// OutboxRepository persists domain events alongside the aggregate write and
// lets the relay drain rows a crash left undispatched.
type OutboxRepository interface {
	Append(ctx context.Context, db DBTX, events []domain.Event) error
	MarkDispatched(ctx context.Context, ids []string) error
	DrainUndispatched(ctx context.Context, limit int, fn func(domain.Event) error) (int, error)
	UndispatchedCount(ctx context.Context) (int, error)
}

// UserRepository defines user data access.
type UserRepository interface {
	Insert(ctx context.Context, db DBTX, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
