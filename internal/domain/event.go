package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event names, namespaced by aggregate.
const (
	EventDraftCreated       = "article.draft_created"
	EventArticlePublished   = "article.published"
	EventArticleUnpublished = "article.unpublished"
	EventArticleUpdated     = "article.updated"
	EventArticleTagsUpdated = "article.tags_updated"
	EventArticleDeleted     = "article.deleted"
	EventCommentCreated     = "comment.created"
	EventReplyCreated       = "comment.reply_created"
	EventCommentDeleted     = "comment.deleted"
	EventClapsAdded         = "reaction.claps_added"
)

// Event is an immutable record of a fact that just became true on an
// aggregate. It stays queued on the owning aggregate until the unit of
// work commits and the dispatcher drains it.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	AggregateID string      `json:"aggregate_id"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Payload     interface{} `json:"payload"`
}

func newEvent(name, aggregateID string, payload interface{}) Event {
	return Event{
		ID:          uuid.New().String(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// Aggregate is implemented by every entity that queues domain events.
type Aggregate interface {
	AggregateID() string
	PendingEvents() []Event
	ClearEvents()
}

// eventRecorder holds an aggregate's pending events. It is embedded into
// aggregates and mutated only by the request scope that owns the instance,
// so it needs no locking.
type eventRecorder struct {
	pending []Event
}

func (r *eventRecorder) record(ev Event) {
	r.pending = append(r.pending, ev)
}

// PendingEvents returns the queued events in FIFO order. The slice is a
// copy; callers cannot mutate the queue.
func (r *eventRecorder) PendingEvents() []Event {
	out := make([]Event, len(r.pending))
	copy(out, r.pending)
	return out
}

// ClearEvents drops the queue. Called by the dispatcher after a successful
// commit and dispatch.
func (r *eventRecorder) ClearEvents() {
	r.pending = nil
}

// Event payloads.

type DraftCreatedPayload struct {
	ArticleID string `json:"article_id"`
	AuthorID  string `json:"author_id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
}

type ArticlePublishedPayload struct {
	ArticleID   string    `json:"article_id"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	TagIDs      []string  `json:"tag_ids"`
	PublishedAt time.Time `json:"published_at"`
}

type ArticleUnpublishedPayload struct {
	ArticleID string `json:"article_id"`
	AuthorID  string `json:"author_id"`
}

type ArticleUpdatedPayload struct {
	ArticleID       string `json:"article_id"`
	RevisionVersion int    `json:"revision_version"`
	ReadingTime     int    `json:"reading_time"`
}

type ArticleTagsUpdatedPayload struct {
	ArticleID string   `json:"article_id"`
	TagIDs    []string `json:"tag_ids"`
}

type ArticleDeletedPayload struct {
	ArticleID string `json:"article_id"`
	AuthorID  string `json:"author_id"`
}

type CommentCreatedPayload struct {
	CommentID string `json:"comment_id"`
	ArticleID string `json:"article_id"`
	AuthorID  string `json:"author_id"`
	Excerpt   string `json:"excerpt"`
}

type ReplyCreatedPayload struct {
	CommentID      string `json:"comment_id"`
	ParentID       string `json:"parent_id"`
	ParentAuthorID string `json:"parent_author_id"`
	ArticleID      string `json:"article_id"`
	AuthorID       string `json:"author_id"`
	Excerpt        string `json:"excerpt"`
}

type CommentDeletedPayload struct {
	CommentID string `json:"comment_id"`
	ArticleID string `json:"article_id"`
}

type ClapsAddedPayload struct {
	ReactionID string `json:"reaction_id"`
	ArticleID  string `json:"article_id"`
	UserID     string `json:"user_id"`
	Added      int    `json:"added"`
	Total      int    `json:"total"`
}

// UnmarshalPayload rebuilds the typed payload for a stored event so relayed
// events look exactly like freshly recorded ones to handlers.
func UnmarshalPayload(name string, data []byte) (interface{}, error) {
	var dst interface{}
	switch name {
	case EventDraftCreated:
		dst = &DraftCreatedPayload{}
	case EventArticlePublished:
		dst = &ArticlePublishedPayload{}
	case EventArticleUnpublished:
		dst = &ArticleUnpublishedPayload{}
	case EventArticleUpdated:
		dst = &ArticleUpdatedPayload{}
	case EventArticleTagsUpdated:
		dst = &ArticleTagsUpdatedPayload{}
	case EventArticleDeleted:
		dst = &ArticleDeletedPayload{}
	case EventCommentCreated:
		dst = &CommentCreatedPayload{}
	case EventReplyCreated:
		dst = &ReplyCreatedPayload{}
	case EventCommentDeleted:
		dst = &CommentDeletedPayload{}
	case EventClapsAdded:
		dst = &ClapsAddedPayload{}
	default:
		return nil, fmt.Errorf("unknown event name %q", name)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", name, err)
	}
	// Dereference so the payload type matches in-memory events.
	switch v := dst.(type) {
	case *DraftCreatedPayload:
		return *v, nil
	case *ArticlePublishedPayload:
		return *v, nil
	case *ArticleUnpublishedPayload:
		return *v, nil
	case *ArticleUpdatedPayload:
		return *v, nil
	case *ArticleTagsUpdatedPayload:
		return *v, nil
	case *ArticleDeletedPayload:
		return *v, nil
	case *CommentCreatedPayload:
		return *v, nil
	case *ReplyCreatedPayload:
		return *v, nil
	case *CommentDeletedPayload:
		return *v, nil
	case *ClapsAddedPayload:
		return *v, nil
	}
	return nil, fmt.Errorf("unhandled payload type for %q", name)
}
