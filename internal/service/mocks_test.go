package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
)

// stubUnitOfWork runs the staged fn with a nil transaction and simulates
// the post-commit dispatch by clearing each aggregate's queue. commitErrs
// is consumed one commit at a time so tests can script conflict-then-success
// sequences.
type stubUnitOfWork struct {
	commitErrs []error
	commits    int
	events     []domain.Event
}

func (s *stubUnitOfWork) Commit(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error, aggregates ...domain.Aggregate) error {
	s.commits++
	if err := fn(ctx, nil); err != nil {
		return err
	}
	if len(s.commitErrs) > 0 {
		err := s.commitErrs[0]
		s.commitErrs = s.commitErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, agg := range aggregates {
		s.events = append(s.events, agg.PendingEvents()...)
		agg.ClearEvents()
	}
	return nil
}

func (s *stubUnitOfWork) eventNames() []string {
	names := make([]string, len(s.events))
	for i, ev := range s.events {
		names[i] = ev.Name
	}
	return names
}

// fakeArticleRepo backs ArticleRepository with function fields; unset
// writes succeed silently.
type fakeArticleRepo struct {
	getByID     func(ctx context.Context, id string) (*domain.Article, error)
	getBySlug   func(ctx context.Context, slug string) (*domain.Article, error)
	inserted    []*domain.Article
	updated     []*domain.Article
	revisions   []domain.ArticleRevision
	insertErr   error
	updateErr   error
	revisionErr error
}

func (f *fakeArticleRepo) Insert(ctx context.Context, db repository.DBTX, a *domain.Article) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, a)
	return nil
}

func (f *fakeArticleRepo) Update(ctx context.Context, db repository.DBTX, a *domain.Article) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, a)
	return nil
}

func (f *fakeArticleRepo) InsertRevision(ctx context.Context, db repository.DBTX, rev domain.ArticleRevision) error {
	if f.revisionErr != nil {
		return f.revisionErr
	}
	f.revisions = append(f.revisions, rev)
	return nil
}

func (f *fakeArticleRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	if f.getByID == nil {
		return nil, nil
	}
	return f.getByID(ctx, id)
}

func (f *fakeArticleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	if f.getBySlug == nil {
		return nil, nil
	}
	return f.getBySlug(ctx, slug)
}

type fakeCommentRepo struct {
	getByID     func(ctx context.Context, id string) (*domain.Comment, error)
	listRoots   func(ctx context.Context, articleID string) ([]domain.Comment, error)
	listReplies func(ctx context.Context, parentID string) ([]domain.Comment, error)
	inserted    []*domain.Comment
	updated     []*domain.Comment
}

func (f *fakeCommentRepo) Insert(ctx context.Context, db repository.DBTX, c *domain.Comment) error {
	f.inserted = append(f.inserted, c)
	return nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, db repository.DBTX, c *domain.Comment) error {
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	if f.getByID == nil {
		return nil, nil
	}
	return f.getByID(ctx, id)
}

func (f *fakeCommentRepo) ListRoots(ctx context.Context, articleID string) ([]domain.Comment, error) {
	if f.listRoots == nil {
		return nil, nil
	}
	return f.listRoots(ctx, articleID)
}

func (f *fakeCommentRepo) ListReplies(ctx context.Context, parentID string) ([]domain.Comment, error) {
	if f.listReplies == nil {
		return nil, nil
	}
	return f.listReplies(ctx, parentID)
}

type fakeReactionRepo struct {
	getByPair func(ctx context.Context, articleID, userID string) (*domain.Reaction, error)
	total     func(ctx context.Context, articleID string) (int, error)
	inserted  []*domain.Reaction
	updated   []*domain.Reaction
}

func (f *fakeReactionRepo) GetByArticleAndUser(ctx context.Context, articleID, userID string) (*domain.Reaction, error) {
	if f.getByPair == nil {
		return nil, nil
	}
	return f.getByPair(ctx, articleID, userID)
}

func (f *fakeReactionRepo) Insert(ctx context.Context, db repository.DBTX, r *domain.Reaction) error {
	f.inserted = append(f.inserted, r)
	return nil
}

func (f *fakeReactionRepo) UpdateCAS(ctx context.Context, db repository.DBTX, r *domain.Reaction) error {
	f.updated = append(f.updated, r)
	return nil
}

func (f *fakeReactionRepo) TotalForArticle(ctx context.Context, articleID string) (int, error) {
	if f.total == nil {
		return 0, nil
	}
	return f.total(ctx, articleID)
}

type fakeNotificationRepo struct {
	list        func(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	markRead    func(ctx context.Context, recipientID, id string) error
	markAllRead func(ctx context.Context, recipientID string) (int64, error)
}

func (f *fakeNotificationRepo) Insert(ctx context.Context, n *domain.Notification) error {
	return nil
}

func (f *fakeNotificationRepo) ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if f.list == nil {
		return nil, nil
	}
	return f.list(ctx, recipientID, unreadOnly, limit)
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, recipientID, id string) error {
	if f.markRead == nil {
		return nil
	}
	return f.markRead(ctx, recipientID, id)
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	if f.markAllRead == nil {
		return 0, nil
	}
	return f.markAllRead(ctx, recipientID)
}
