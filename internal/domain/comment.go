package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentStatus is the lifecycle state of a comment.
type CommentStatus string

const (
	CommentActive  CommentStatus = "active"
	CommentEdited  CommentStatus = "edited"
	CommentDeleted CommentStatus = "deleted"
)

const commentExcerptLength = 120

// Comment is a discussion entry on an article. Threads are at most two
// levels deep: a reply's parent is always a root comment. Replies can only
// be built through NewReply, which rejects a parent that is itself a reply,
// so a third level is not constructible from outside this package.
//
// The aggregate performs no ownership checks; the caller must verify that
// the acting identity owns the comment before deleting or editing it.
type Comment struct {
	ID        string        `json:"id"`
	ArticleID string        `json:"article_id"`
	AuthorID  string        `json:"author_id"`
	ParentID  *string       `json:"parent_id,omitempty"`
	Content   string        `json:"content"`
	Status    CommentStatus `json:"status"`
	LikeCount int           `json:"like_count"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	eventRecorder
}

// AggregateID implements Aggregate.
func (c *Comment) AggregateID() string { return c.ID }

// IsReply reports whether the comment has a parent.
func (c *Comment) IsReply() bool { return c.ParentID != nil }

// NewComment creates a root comment on an article.
func NewComment(articleID, authorID, content string) *Comment {
	now := time.Now().UTC()
	c := &Comment{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		AuthorID:  authorID,
		Content:   content,
		Status:    CommentActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.record(newEvent(EventCommentCreated, c.ID, CommentCreatedPayload{
		CommentID: c.ID,
		ArticleID: articleID,
		AuthorID:  authorID,
		Excerpt:   excerpt(content),
	}))
	return c
}

// NewReply creates a reply under parent. Fails with nesting_too_deep when
// the parent is itself a reply; depth is enforced here, at creation time.
func NewReply(parent *Comment, authorID, content string) (*Comment, error) {
	if parent.IsReply() {
		return nil, ErrNestingTooDeep
	}

	now := time.Now().UTC()
	parentID := parent.ID
	c := &Comment{
		ID:        uuid.New().String(),
		ArticleID: parent.ArticleID,
		AuthorID:  authorID,
		ParentID:  &parentID,
		Content:   content,
		Status:    CommentActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.record(newEvent(EventReplyCreated, c.ID, ReplyCreatedPayload{
		CommentID:      c.ID,
		ParentID:       parent.ID,
		ParentAuthorID: parent.AuthorID,
		ArticleID:      parent.ArticleID,
		AuthorID:       authorID,
		Excerpt:        excerpt(content),
	}))
	return c, nil
}

// Edit replaces the content and marks the comment edited.
func (c *Comment) Edit(content string) error {
	if c.Status == CommentDeleted {
		return ErrCannotEditDeleted
	}
	c.Content = content
	c.Status = CommentEdited
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete soft-deletes the comment. Idempotent.
func (c *Comment) Delete() {
	if c.Status == CommentDeleted {
		return
	}
	c.Status = CommentDeleted
	c.UpdatedAt = time.Now().UTC()
	c.record(newEvent(EventCommentDeleted, c.ID, CommentDeletedPayload{
		CommentID: c.ID,
		ArticleID: c.ArticleID,
	}))
}

func excerpt(content string) string {
	if len(content) <= commentExcerptLength {
		return content
	}
	return content[:commentExcerptLength]
}
