package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	StatusDraft       ArticleStatus = "draft"
	StatusPublished   ArticleStatus = "published"
	StatusUnpublished ArticleStatus = "unpublished"
	StatusDeleted     ArticleStatus = "deleted"
)

// ValidStatuses contains all valid article statuses.
var ValidStatuses = []ArticleStatus{StatusDraft, StatusPublished, StatusUnpublished, StatusDeleted}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}

const (
	// WordsPerMinute is the reading speed used to compute reading time.
	WordsPerMinute = 200
	// MaxImageURLLength caps the stored featured-image URL.
	MaxImageURLLength = 2048
)

var (
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

// ArticleRevision is an immutable snapshot of an article's prior title and
// content, captured before each overwrite. Versions are 1..N with no gaps.
type ArticleRevision struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	Version   int       `json:"version"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Article is the publication aggregate. Status transitions:
// draft -> published|deleted, published -> unpublished|deleted,
// unpublished -> published|deleted. Deleted is terminal.
type Article struct {
	ID               string            `json:"id"`
	AuthorID         string            `json:"author_id"`
	Title            string            `json:"title"`
	Slug             string            `json:"slug"`
	Subtitle         string            `json:"subtitle,omitempty"`
	Content          string            `json:"content"`
	FeaturedImageURL *string           `json:"featured_image_url,omitempty"`
	Status           ArticleStatus     `json:"status"`
	ReadingTime      int               `json:"reading_time"`
	TagIDs           []string          `json:"tag_ids,omitempty"`
	Revisions        []ArticleRevision `json:"revisions,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	PublishedAt      *time.Time        `json:"published_at,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`

	eventRecorder
}

// AggregateID implements Aggregate.
func (a *Article) AggregateID() string { return a.ID }

// NewDraft creates a draft article. The slug must already be in its final
// lowercase hyphenated form; slug generation belongs to the caller.
func NewDraft(authorID, title, slug, subtitle, content string) (*Article, error) {
	if !slugRegex.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	now := time.Now().UTC()
	a := &Article{
		ID:          uuid.New().String(),
		AuthorID:    authorID,
		Title:       title,
		Slug:        slug,
		Subtitle:    subtitle,
		Content:     content,
		Status:      StatusDraft,
		ReadingTime: ReadingTime(content),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.record(newEvent(EventDraftCreated, a.ID, DraftCreatedPayload{
		ArticleID: a.ID,
		AuthorID:  authorID,
		Title:     title,
		Slug:      slug,
	}))
	return a, nil
}

// ReadingTime estimates minutes to read: max(1, words/200).
func ReadingTime(content string) int {
	minutes := len(strings.Fields(content)) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Publish transitions the article to published and stamps PublishedAt.
// The published event carries a snapshot of the current tag ids; consumers
// must not assume tags can be fetched later.
func (a *Article) Publish() error {
	switch a.Status {
	case StatusPublished:
		return ErrAlreadyPublished
	case StatusDeleted:
		return ErrCannotPublishDeleted
	}
	if strings.TrimSpace(a.Content) == "" {
		return ErrEmptyContent
	}

	now := time.Now().UTC()
	a.Status = StatusPublished
	a.PublishedAt = &now
	a.UpdatedAt = now
	a.record(newEvent(EventArticlePublished, a.ID, ArticlePublishedPayload{
		ArticleID:   a.ID,
		AuthorID:    a.AuthorID,
		Title:       a.Title,
		Slug:        a.Slug,
		TagIDs:      a.tagSnapshot(),
		PublishedAt: now,
	}))
	return nil
}

// Unpublish takes a published article offline. Only valid from published.
func (a *Article) Unpublish() error {
	if a.Status != StatusPublished {
		return ErrNotPublished
	}
	a.Status = StatusUnpublished
	a.UpdatedAt = time.Now().UTC()
	a.record(newEvent(EventArticleUnpublished, a.ID, ArticleUnpublishedPayload{
		ArticleID: a.ID,
		AuthorID:  a.AuthorID,
	}))
	return nil
}

// UpdateContent archives the current title and content as a new revision,
// then overwrites the fields and recomputes reading time. The revision is
// captured before any mutation so the snapshot is always the pre-update
// state.
func (a *Article) UpdateContent(title, subtitle, content string) error {
	if a.Status == StatusDeleted {
		return ErrCannotUpdateDeleted
	}

	now := time.Now().UTC()
	rev := ArticleRevision{
		ID:        uuid.New().String(),
		ArticleID: a.ID,
		Version:   len(a.Revisions) + 1,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: now,
	}
	a.Revisions = append(a.Revisions, rev)

	a.Title = title
	a.Subtitle = subtitle
	a.Content = content
	a.ReadingTime = ReadingTime(content)
	a.UpdatedAt = now
	a.record(newEvent(EventArticleUpdated, a.ID, ArticleUpdatedPayload{
		ArticleID:       a.ID,
		RevisionVersion: rev.Version,
		ReadingTime:     a.ReadingTime,
	}))
	return nil
}

// SetFeaturedImage validates and stores the image URL. The blob itself
// lives in external storage; only the URL string is kept here.
func (a *Article) SetFeaturedImage(rawURL string) error {
	if a.Status == StatusDeleted {
		return ErrCannotUpdateDeleted
	}
	if err := validateImageURL(rawURL); err != nil {
		return err
	}
	a.FeaturedImageURL = &rawURL
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveFeaturedImage clears the image URL. No-op when none is set.
func (a *Article) RemoveFeaturedImage() error {
	if a.Status == StatusDeleted {
		return ErrCannotUpdateDeleted
	}
	if a.FeaturedImageURL == nil {
		return nil
	}
	a.FeaturedImageURL = nil
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func validateImageURL(rawURL string) error {
	if rawURL == "" || len(rawURL) > MaxImageURLLength {
		return ErrInvalidImageURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidImageURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidImageURL
	}
	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return nil
		}
	}
	return ErrInvalidImageURL
}

// AddTag adds a tag id to the set. Adding a present tag is a silent no-op.
func (a *Article) AddTag(tagID string) error {
	if a.Status == StatusDeleted {
		return ErrCannotUpdateDeleted
	}
	if a.hasTag(tagID) {
		return nil
	}
	a.TagIDs = append(a.TagIDs, tagID)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveTag removes a tag id from the set. Removing an absent tag is a
// silent no-op.
func (a *Article) RemoveTag(tagID string) error {
	if a.Status == StatusDeleted {
		return ErrCannotUpdateDeleted
	}
	for i, id := range a.TagIDs {
		if id == tagID {
			a.TagIDs = append(a.TagIDs[:i], a.TagIDs[i+1:]...)
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return nil
}

// UpdateTags replaces the whole tag set with ids. Replacement semantics,
// never a merge: an empty list clears every tag.
func (a *Article) UpdateTags(tagIDs []string) error {
	if a.Status == StatusDeleted {
		return ErrCannotUpdateDeleted
	}
	a.TagIDs = a.TagIDs[:0]
	for _, id := range tagIDs {
		if !a.hasTag(id) {
			a.TagIDs = append(a.TagIDs, id)
		}
	}
	a.UpdatedAt = time.Now().UTC()
	a.record(newEvent(EventArticleTagsUpdated, a.ID, ArticleTagsUpdatedPayload{
		ArticleID: a.ID,
		TagIDs:    a.tagSnapshot(),
	}))
	return nil
}

// Delete soft-deletes the article. Terminal, unconditional and idempotent:
// calling it on an already deleted article is a harmless no-op.
func (a *Article) Delete() {
	if a.Status == StatusDeleted {
		return
	}
	a.Status = StatusDeleted
	a.UpdatedAt = time.Now().UTC()
	a.record(newEvent(EventArticleDeleted, a.ID, ArticleDeletedPayload{
		ArticleID: a.ID,
		AuthorID:  a.AuthorID,
	}))
}

func (a *Article) hasTag(tagID string) bool {
	for _, id := range a.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

func (a *Article) tagSnapshot() []string {
	out := make([]string, len(a.TagIDs))
	copy(out, a.TagIDs)
	return out
}
