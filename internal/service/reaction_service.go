package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/logger"
	"github.com/rokasce/medium-clone-sub000/internal/metrics"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
)

// maxClapRetries bounds the optimistic-concurrency retry loop.
const maxClapRetries = 3

// ReactionService executes clap commands. The counter row is created
// lazily on the first clap; concurrent writers from the same (article,
// user) pair are serialized by the version token, with a bounded
// reload-and-retry on conflict.
type ReactionService struct {
	reactions repository.ReactionRepository
	articles  repository.ArticleRepository
	uow       UnitOfWork
}

// NewReactionService creates a new ReactionService.
func NewReactionService(reactions repository.ReactionRepository, articles repository.ArticleRepository, uow UnitOfWork) *ReactionService {
	return &ReactionService{reactions: reactions, articles: articles, uow: uow}
}

// AddClaps adds count claps from a user to an article, creating the
// counter on first use. Exceeding the 50-clap cap fails with
// clap_limit_exceeded, never a partial increment.
func (s *ReactionService) AddClaps(ctx context.Context, articleID, userID string, count int) (*domain.Reaction, error) {
	a, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, observeReaction("add_claps", err)
	}
	if a == nil || a.Status == domain.StatusDeleted {
		return nil, observeReaction("add_claps", domain.ErrArticleNotFound)
	}

	for attempt := 0; attempt < maxClapRetries; attempt++ {
		r, err := s.reactions.GetByArticleAndUser(ctx, articleID, userID)
		if err != nil {
			return nil, observeReaction("add_claps", err)
		}
		created := false
		if r == nil {
			r = domain.NewReaction(articleID, userID)
			created = true
		}

		if err := r.AddClaps(count); err != nil {
			return nil, observeReaction("add_claps", err)
		}

		err = s.uow.Commit(ctx, func(ctx context.Context, tx pgx.Tx) error {
			if created {
				return s.reactions.Insert(ctx, tx, r)
			}
			return s.reactions.UpdateCAS(ctx, tx, r)
		}, r)
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			logger.WarnContext(ctx, "Clap write conflict, retrying",
				slog.String("article_id", articleID),
				slog.String("user_id", userID),
				slog.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, observeReaction("add_claps", fmt.Errorf("add claps: %w", err))
		}
		return r, observeReaction("add_claps", nil)
	}

	return nil, observeReaction("add_claps", domain.ErrConcurrentUpdate)
}

// TotalClapsForArticle returns the live sum across all per-user counters.
func (s *ReactionService) TotalClapsForArticle(ctx context.Context, articleID string) (int, error) {
	return s.reactions.TotalForArticle(ctx, articleID)
}

// UserClaps returns the caller's counter for an article, or a zero-valued
// one when they have never clapped it.
func (s *ReactionService) UserClaps(ctx context.Context, articleID, userID string) (*domain.Reaction, error) {
	r, err := s.reactions.GetByArticleAndUser(ctx, articleID, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return domain.NewReaction(articleID, userID), nil
	}
	return r, nil
}

func observeReaction(command string, err error) error {
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.DomainCommandsTotal.WithLabelValues("reaction", command, result).Inc()
	return err
}
