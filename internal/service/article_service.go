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

// CreateDraftInput carries the fields for a new draft.
type CreateDraftInput struct {
	AuthorID string
	Title    string
	Slug     string
	Subtitle string
	Content  string
}

// UpdateContentInput carries the fields for a content update.
type UpdateContentInput struct {
	Title    string
	Subtitle string
	Content  string
}

// ArticleService executes article commands. Each command loads the
// aggregate, checks ownership (authorization lives here, one layer above
// the aggregate), applies the domain operation and commits through the
// unit of work so the queued events dispatch exactly when the write lands.
type ArticleService struct {
	articles  repository.ArticleRepository
	uow       UnitOfWork
	validator *validator.Validator
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles repository.ArticleRepository, uow UnitOfWork, v *validator.Validator) *ArticleService {
	return &ArticleService{articles: articles, uow: uow, validator: v}
}

// CreateDraft validates the input and persists a new draft.
func (s *ArticleService) CreateDraft(ctx context.Context, in CreateDraftInput) (*domain.Article, error) {
	if err := s.validator.ValidateDraft(validator.DraftInput(in)); err != nil {
		return nil, observeArticle("create_draft", err)
	}

	a, err := domain.NewDraft(in.AuthorID, in.Title, in.Slug, in.Subtitle, in.Content)
	if err != nil {
		return nil, observeArticle("create_draft", err)
	}

	err = s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.articles.Insert(ctx, tx, a)
	}, a)
	if err != nil {
		return nil, observeArticle("create_draft", fmt.Errorf("create draft: %w", err))
	}
	return a, observeArticle("create_draft", nil)
}

// Publish transitions the article to published.
func (s *ArticleService) Publish(ctx context.Context, articleID, actorID string) (*domain.Article, error) {
	return s.mutate(ctx, "publish", articleID, actorID, func(a *domain.Article) error {
		return a.Publish()
	})
}

// Unpublish takes the article offline.
func (s *ArticleService) Unpublish(ctx context.Context, articleID, actorID string) (*domain.Article, error) {
	return s.mutate(ctx, "unpublish", articleID, actorID, func(a *domain.Article) error {
		return a.Unpublish()
	})
}

// UpdateContent archives the current revision and overwrites the content.
func (s *ArticleService) UpdateContent(ctx context.Context, articleID, actorID string, in UpdateContentInput) (*domain.Article, error) {
	if err := s.validator.ValidateContent(validator.ContentInput(in)); err != nil {
		return nil, observeArticle("update_content", err)
	}

	a, err := s.loadOwned(ctx, articleID, actorID)
	if err != nil {
		return nil, observeArticle("update_content", err)
	}
	if err := a.UpdateContent(in.Title, in.Subtitle, in.Content); err != nil {
		return nil, observeArticle("update_content", err)
	}

	rev := a.Revisions[len(a.Revisions)-1]
	err = s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.articles.InsertRevision(ctx, tx, rev); err != nil {
			return err
		}
		return s.articles.Update(ctx, tx, a)
	}, a)
	if err != nil {
		return nil, observeArticle("update_content", fmt.Errorf("update content: %w", err))
	}
	return a, observeArticle("update_content", nil)
}

// SetFeaturedImage validates and stores the image URL.
func (s *ArticleService) SetFeaturedImage(ctx context.Context, articleID, actorID, imageURL string) (*domain.Article, error) {
	if err := s.validator.ValidateImageURL(imageURL); err != nil {
		return nil, observeArticle("set_featured_image", domain.ErrInvalidImageURL)
	}
	return s.mutate(ctx, "set_featured_image", articleID, actorID, func(a *domain.Article) error {
		return a.SetFeaturedImage(imageURL)
	})
}

// RemoveFeaturedImage clears the image URL.
func (s *ArticleService) RemoveFeaturedImage(ctx context.Context, articleID, actorID string) (*domain.Article, error) {
	return s.mutate(ctx, "remove_featured_image", articleID, actorID, func(a *domain.Article) error {
		return a.RemoveFeaturedImage()
	})
}

// AddTag adds one tag id to the set.
func (s *ArticleService) AddTag(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error) {
	return s.mutate(ctx, "add_tag", articleID, actorID, func(a *domain.Article) error {
		return a.AddTag(tagID)
	})
}

// RemoveTag removes one tag id from the set.
func (s *ArticleService) RemoveTag(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error) {
	return s.mutate(ctx, "remove_tag", articleID, actorID, func(a *domain.Article) error {
		return a.RemoveTag(tagID)
	})
}

// UpdateTags replaces the whole tag set.
func (s *ArticleService) UpdateTags(ctx context.Context, articleID, actorID string, tagIDs []string) (*domain.Article, error) {
	if err := s.validator.ValidateTagIDs(tagIDs); err != nil {
		return nil, observeArticle("update_tags", err)
	}
	return s.mutate(ctx, "update_tags", articleID, actorID, func(a *domain.Article) error {
		return a.UpdateTags(tagIDs)
	})
}

// Delete soft-deletes the article. Idempotent: deleting a deleted article
// succeeds without a write.
func (s *ArticleService) Delete(ctx context.Context, articleID, actorID string) error {
	a, err := s.loadOwned(ctx, articleID, actorID)
	if err != nil {
		return observeArticle("delete", err)
	}

	a.Delete()
	if len(a.PendingEvents()) == 0 {
		return observeArticle("delete", nil)
	}

	err = s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.articles.Update(ctx, tx, a)
	}, a)
	if err != nil {
		return observeArticle("delete", fmt.Errorf("delete article: %w", err))
	}
	return observeArticle("delete", nil)
}

// GetByID returns the article or a not-found error.
func (s *ArticleService) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

// GetBySlug returns the article or a not-found error.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	a, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

// mutate is the shared load-check-apply-commit path for commands that only
// rewrite the article row.
func (s *ArticleService) mutate(ctx context.Context, command, articleID, actorID string, op func(*domain.Article) error) (*domain.Article, error) {
	a, err := s.loadOwned(ctx, articleID, actorID)
	if err != nil {
		return nil, observeArticle(command, err)
	}
	if err := op(a); err != nil {
		return nil, observeArticle(command, err)
	}

	err = s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.articles.Update(ctx, tx, a)
	}, a)
	if err != nil {
		return nil, observeArticle(command, fmt.Errorf("%s: %w", command, err))
	}
	return a, observeArticle(command, nil)
}

func (s *ArticleService) loadOwned(ctx context.Context, articleID, actorID string) (*domain.Article, error) {
	a, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrArticleNotFound
	}
	if a.AuthorID != actorID {
		return nil, domain.ErrNotArticleAuthor
	}
	return a, nil
}

// observeArticle records the command metric and passes the error through.
func observeArticle(command string, err error) error {
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.DomainCommandsTotal.WithLabelValues("article", command, result).Inc()
	return err
}
