package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

// PostgresCommentRepository implements CommentRepository using PostgreSQL.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository.
func NewPostgresCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

const commentColumns = `id, article_id, author_id, parent_id, content, status, like_count, created_at, updated_at`

// Insert stages a new comment row.
func (r *PostgresCommentRepository) Insert(ctx context.Context, db DBTX, c *domain.Comment) error {
	_, err := db.Exec(ctx, `
		INSERT INTO comments (`+commentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.ArticleID, c.AuthorID, c.ParentID, c.Content, string(c.Status),
		c.LikeCount, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// Update stages the comment's mutable fields.
func (r *PostgresCommentRepository) Update(ctx context.Context, db DBTX, c *domain.Comment) error {
	tag, err := db.Exec(ctx, `
		UPDATE comments
		SET content = $2, status = $3, like_count = $4, updated_at = $5
		WHERE id = $1
	`, c.ID, c.Content, string(c.Status), c.LikeCount, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update comment %s: no row", c.ID)
	}
	return nil
}

// GetByID loads a single comment, or (nil, nil) when absent.
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	c, err := r.scanOne(r.pool.QueryRow(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE id = $1
	`, id))
	if err != nil {
		return nil, fmt.Errorf("query comment: %w", err)
	}
	return c, nil
}

// ListRoots returns the active root comments of an article, oldest first.
func (r *PostgresCommentRepository) ListRoots(ctx context.Context, articleID string) ([]domain.Comment, error) {
	return r.list(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE article_id = $1 AND parent_id IS NULL AND status <> 'deleted'
		ORDER BY created_at
	`, articleID)
}

// ListReplies returns the active replies under a root comment, oldest
// first. Flat query keeps popular threads from ballooning object graphs.
func (r *PostgresCommentRepository) ListReplies(ctx context.Context, parentID string) ([]domain.Comment, error) {
	return r.list(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE parent_id = $1 AND status <> 'deleted'
		ORDER BY created_at
	`, parentID)
}

func (r *PostgresCommentRepository) list(ctx context.Context, query, arg string) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var status string
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.ParentID, &c.Content,
			&status, &c.LikeCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Status = domain.CommentStatus(status)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *PostgresCommentRepository) scanOne(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	var status string
	err := row.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.ParentID, &c.Content,
		&status, &c.LikeCount, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Status = domain.CommentStatus(status)
	return &c, nil
}
