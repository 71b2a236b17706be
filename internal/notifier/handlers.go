package notifier

import (
	"context"
	"fmt"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

// ClapHandler notifies an article's author when a reader claps. The author
// clapping their own article produces nothing.
type ClapHandler struct {
	sink     Sink
	articles ArticleSource
	users    UserSource
}

// NewClapHandler creates a ClapHandler.
func NewClapHandler(sink Sink, articles ArticleSource, users UserSource) *ClapHandler {
	return &ClapHandler{sink: sink, articles: articles, users: users}
}

// EventName implements events.Handler.
func (h *ClapHandler) EventName() string { return domain.EventClapsAdded }

// Handle implements events.Handler.
func (h *ClapHandler) Handle(ctx context.Context, ev domain.Event) error {
	payload, ok := ev.Payload.(domain.ClapsAddedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Name)
	}

	article, err := h.articles.GetByID(ctx, payload.ArticleID)
	if err != nil {
		return err
	}
	if article == nil || article.AuthorID == payload.UserID {
		return nil
	}

	actor, err := h.users.GetByID(ctx, payload.UserID)
	if err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("clap actor %s not found", payload.UserID)
	}

	notice := Notice{
		EventID:     ev.ID,
		RecipientID: article.AuthorID,
		Type:        domain.NotificationClap,
		Title:       fmt.Sprintf("%s clapped for %q", actor.Name, article.Title),
		Message:     fmt.Sprintf("%s added %d claps to your article", actor.Name, payload.Added),
		ActionURL:   "/articles/" + article.Slug,
		EntityID:    article.ID,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
	}
	if actor.AvatarURL != nil {
		notice.ActorAvatarURL = *actor.AvatarURL
	}
	return h.sink.Create(ctx, notice)
}

// CommentHandler notifies an article's author about new root comments.
type CommentHandler struct {
	sink     Sink
	articles ArticleSource
	users    UserSource
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(sink Sink, articles ArticleSource, users UserSource) *CommentHandler {
	return &CommentHandler{sink: sink, articles: articles, users: users}
}

// EventName implements events.Handler.
func (h *CommentHandler) EventName() string { return domain.EventCommentCreated }

// Handle implements events.Handler.
func (h *CommentHandler) Handle(ctx context.Context, ev domain.Event) error {
	payload, ok := ev.Payload.(domain.CommentCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Name)
	}

	article, err := h.articles.GetByID(ctx, payload.ArticleID)
	if err != nil {
		return err
	}
	if article == nil || article.AuthorID == payload.AuthorID {
		return nil
	}

	actor, err := h.users.GetByID(ctx, payload.AuthorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("comment author %s not found", payload.AuthorID)
	}

	notice := Notice{
		EventID:     ev.ID,
		RecipientID: article.AuthorID,
		Type:        domain.NotificationComment,
		Title:       fmt.Sprintf("%s commented on %q", actor.Name, article.Title),
		Message:     payload.Excerpt,
		ActionURL:   "/articles/" + article.Slug,
		EntityID:    payload.CommentID,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
	}
	if actor.AvatarURL != nil {
		notice.ActorAvatarURL = *actor.AvatarURL
	}
	return h.sink.Create(ctx, notice)
}

// ReplyHandler notifies the parent comment's author about replies. Replying
// to yourself produces nothing.
type ReplyHandler struct {
	sink     Sink
	articles ArticleSource
	users    UserSource
}

// NewReplyHandler creates a ReplyHandler.
func NewReplyHandler(sink Sink, articles ArticleSource, users UserSource) *ReplyHandler {
	return &ReplyHandler{sink: sink, articles: articles, users: users}
}

// EventName implements events.Handler.
func (h *ReplyHandler) EventName() string { return domain.EventReplyCreated }

// Handle implements events.Handler.
func (h *ReplyHandler) Handle(ctx context.Context, ev domain.Event) error {
	payload, ok := ev.Payload.(domain.ReplyCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Name)
	}

	if payload.ParentAuthorID == payload.AuthorID {
		return nil
	}

	actor, err := h.users.GetByID(ctx, payload.AuthorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("reply author %s not found", payload.AuthorID)
	}

	actionURL := ""
	entityID := payload.CommentID
	if article, err := h.articles.GetByID(ctx, payload.ArticleID); err != nil {
		return err
	} else if article != nil {
		actionURL = "/articles/" + article.Slug
	}

	notice := Notice{
		EventID:     ev.ID,
		RecipientID: payload.ParentAuthorID,
		Type:        domain.NotificationReply,
		Title:       fmt.Sprintf("%s replied to your comment", actor.Name),
		Message:     payload.Excerpt,
		ActionURL:   actionURL,
		EntityID:    entityID,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
	}
	if actor.AvatarURL != nil {
		notice.ActorAvatarURL = *actor.AvatarURL
	}
	return h.sink.Create(ctx, notice)
}

// PublishedHandler sends the author a publication receipt. There is no
// actor here; the event is the system confirming the article went live.
type PublishedHandler struct {
	sink Sink
}

// NewPublishedHandler creates a PublishedHandler.
func NewPublishedHandler(sink Sink) *PublishedHandler {
	return &PublishedHandler{sink: sink}
}

// EventName implements events.Handler.
func (h *PublishedHandler) EventName() string { return domain.EventArticlePublished }

// Handle implements events.Handler.
func (h *PublishedHandler) Handle(ctx context.Context, ev domain.Event) error {
	payload, ok := ev.Payload.(domain.ArticlePublishedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Name)
	}

	return h.sink.Create(ctx, Notice{
		EventID:     ev.ID,
		RecipientID: payload.AuthorID,
		Type:        domain.NotificationPublished,
		Title:       fmt.Sprintf("%q is now live", payload.Title),
		Message:     "Your article has been published.",
		ActionURL:   "/articles/" + payload.Slug,
		EntityID:    payload.ArticleID,
	})
}
