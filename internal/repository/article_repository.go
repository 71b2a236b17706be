package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

const articleColumns = `id, author_id, title, slug, subtitle, content, featured_image_url,
	status, reading_time, tag_ids, created_at, published_at, updated_at`

// Insert stages a new article row.
func (r *PostgresArticleRepository) Insert(ctx context.Context, db DBTX, a *domain.Article) error {
	_, err := db.Exec(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, a.ID, a.AuthorID, a.Title, a.Slug, a.Subtitle, a.Content, a.FeaturedImageURL,
		string(a.Status), a.ReadingTime, a.TagIDs, a.CreatedAt, a.PublishedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Update stages the article's full current state. Tags are written as a
// complete snapshot, never a diff.
func (r *PostgresArticleRepository) Update(ctx context.Context, db DBTX, a *domain.Article) error {
	tag, err := db.Exec(ctx, `
		UPDATE articles
		SET title = $2, subtitle = $3, content = $4, featured_image_url = $5,
		    status = $6, reading_time = $7, tag_ids = $8, published_at = $9, updated_at = $10
		WHERE id = $1
	`, a.ID, a.Title, a.Subtitle, a.Content, a.FeaturedImageURL,
		string(a.Status), a.ReadingTime, a.TagIDs, a.PublishedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update article %s: no row", a.ID)
	}
	return nil
}

// InsertRevision stages one immutable revision snapshot. The unique
// (article_id, version) constraint guarantees the 1..N gap-free sequence.
func (r *PostgresArticleRepository) InsertRevision(ctx context.Context, db DBTX, rev domain.ArticleRevision) error {
	_, err := db.Exec(ctx, `
		INSERT INTO article_revisions (id, article_id, version, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rev.ID, rev.ArticleID, rev.Version, rev.Title, rev.Content, rev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert revision v%d: %w", rev.Version, err)
	}
	return nil
}

// GetByID loads an article with its revision log.
func (r *PostgresArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	return r.get(ctx, "id", id)
}

// GetBySlug loads an article by its slug.
func (r *PostgresArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return r.get(ctx, "slug", slug)
}

func (r *PostgresArticleRepository) get(ctx context.Context, column, value string) (*domain.Article, error) {
	var a domain.Article
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE `+column+` = $1
	`, value).Scan(&a.ID, &a.AuthorID, &a.Title, &a.Slug, &a.Subtitle, &a.Content,
		&a.FeaturedImageURL, &status, &a.ReadingTime, &a.TagIDs,
		&a.CreatedAt, &a.PublishedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query article by %s: %w", column, err)
	}
	a.Status = domain.ArticleStatus(status)

	revisions, err := r.loadRevisions(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Revisions = revisions
	return &a, nil
}

func (r *PostgresArticleRepository) loadRevisions(ctx context.Context, articleID string) ([]domain.ArticleRevision, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, article_id, version, title, content, created_at
		FROM article_revisions
		WHERE article_id = $1
		ORDER BY version
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	var revisions []domain.ArticleRevision
	for rows.Next() {
		var rev domain.ArticleRevision
		if err := rows.Scan(&rev.ID, &rev.ArticleID, &rev.Version, &rev.Title, &rev.Content, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}
