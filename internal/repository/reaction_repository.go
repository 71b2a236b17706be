package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

const uniqueViolation = "23505"

// PostgresReactionRepository implements ReactionRepository using PostgreSQL.
type PostgresReactionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository.
func NewPostgresReactionRepository(pool *pgxpool.Pool) *PostgresReactionRepository {
	return &PostgresReactionRepository{pool: pool}
}

// GetByArticleAndUser returns the counter for the pair, or (nil, nil) when
// the user has never clapped the article.
func (r *PostgresReactionRepository) GetByArticleAndUser(ctx context.Context, articleID, userID string) (*domain.Reaction, error) {
	var re domain.Reaction
	err := r.pool.QueryRow(ctx, `
		SELECT id, article_id, user_id, clap_count, version, created_at, last_clapped_at
		FROM reactions
		WHERE article_id = $1 AND user_id = $2
	`, articleID, userID).Scan(&re.ID, &re.ArticleID, &re.UserID, &re.ClapCount,
		&re.Version, &re.CreatedAt, &re.LastClappedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query reaction: %w", err)
	}
	return &re, nil
}

// Insert stages the first counter for a (article, user) pair. A concurrent
// first clap from the same pair surfaces as domain.ErrConcurrentUpdate so
// the caller can reload and retry.
func (r *PostgresReactionRepository) Insert(ctx context.Context, db DBTX, re *domain.Reaction) error {
	_, err := db.Exec(ctx, `
		INSERT INTO reactions (id, article_id, user_id, clap_count, version, created_at, last_clapped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, re.ID, re.ArticleID, re.UserID, re.ClapCount, re.Version, re.CreatedAt, re.LastClappedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrConcurrentUpdate
		}
		return fmt.Errorf("insert reaction: %w", err)
	}
	return nil
}

// UpdateCAS writes the aggregate's new state guarded by the optimistic
// version token. The row is updated only when the stored version is the one
// the aggregate was loaded at; otherwise another request won the race and
// domain.ErrConcurrentUpdate is returned.
func (r *PostgresReactionRepository) UpdateCAS(ctx context.Context, db DBTX, re *domain.Reaction) error {
	tag, err := db.Exec(ctx, `
		UPDATE reactions
		SET clap_count = $2, version = $3, last_clapped_at = $4
		WHERE id = $1 AND version = $5
	`, re.ID, re.ClapCount, re.Version, re.LastClappedAt, re.Version-1)
	if err != nil {
		return fmt.Errorf("update reaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

// TotalForArticle sums all per-user counters for the article. Live sum on
// every read; nothing is materialized.
func (r *PostgresReactionRepository) TotalForArticle(ctx context.Context, articleID string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(clap_count), 0)
		FROM reactions
		WHERE article_id = $1
	`, articleID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum claps: %w", err)
	}
	return total, nil
}
