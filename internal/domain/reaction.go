package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxClapsPerUser is the hard cap on accumulated claps for one user on one
// article.
const MaxClapsPerUser = 50

// Reaction is the per-(article, user) clap counter. Exactly one reaction
// exists per pair; it is created lazily on the first clap and only ever
// grows. Version is an optimistic concurrency token: the storage layer
// updates the row only when the persisted version matches Version-1, so
// concurrent read-then-write cycles cannot lose updates.
type Reaction struct {
	ID            string    `json:"id"`
	ArticleID     string    `json:"article_id"`
	UserID        string    `json:"user_id"`
	ClapCount     int       `json:"clap_count"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	LastClappedAt time.Time `json:"last_clapped_at"`

	eventRecorder
}

// AggregateID implements Aggregate.
func (r *Reaction) AggregateID() string { return r.ID }

// NewReaction creates an empty counter for the pair. It carries no claps
// until AddClaps is called.
func NewReaction(articleID, userID string) *Reaction {
	now := time.Now().UTC()
	return &Reaction{
		ID:            uuid.New().String(),
		ArticleID:     articleID,
		UserID:        userID,
		ClapCount:     0,
		Version:       1,
		CreatedAt:     now,
		LastClappedAt: now,
	}
}

// AddClaps increments the counter by count and refreshes LastClappedAt.
// Exceeding the cap fails with clap_limit_exceeded and leaves the counter
// untouched; there is no silent clamping.
func (r *Reaction) AddClaps(count int) error {
	if count <= 0 {
		return ErrInvalidClapCount
	}
	if r.ClapCount+count > MaxClapsPerUser {
		return ErrClapLimitExceeded
	}

	r.ClapCount += count
	r.Version++
	r.LastClappedAt = time.Now().UTC()
	r.record(newEvent(EventClapsAdded, r.ID, ClapsAddedPayload{
		ReactionID: r.ID,
		ArticleID:  r.ArticleID,
		UserID:     r.UserID,
		Added:      count,
		Total:      r.ClapCount,
	}))
	return nil
}
