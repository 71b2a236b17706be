package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Function-field fakes for the service interfaces. Tests set only the
// fields a handler should touch; calling an unset field panics, which
// surfaces an unexpected service call as a test failure.

type fakeArticleService struct {
	createDraft         func(ctx context.Context, in service.CreateDraftInput) (*domain.Article, error)
	publish             func(ctx context.Context, articleID, actorID string) (*domain.Article, error)
	unpublish           func(ctx context.Context, articleID, actorID string) (*domain.Article, error)
	updateContent       func(ctx context.Context, articleID, actorID string, in service.UpdateContentInput) (*domain.Article, error)
	setFeaturedImage    func(ctx context.Context, articleID, actorID, imageURL string) (*domain.Article, error)
	removeFeaturedImage func(ctx context.Context, articleID, actorID string) (*domain.Article, error)
	addTag              func(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error)
	removeTag           func(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error)
	updateTags          func(ctx context.Context, articleID, actorID string, tagIDs []string) (*domain.Article, error)
	delete              func(ctx context.Context, articleID, actorID string) error
	getByID             func(ctx context.Context, id string) (*domain.Article, error)
	getBySlug           func(ctx context.Context, slug string) (*domain.Article, error)
}

func (f *fakeArticleService) CreateDraft(ctx context.Context, in service.CreateDraftInput) (*domain.Article, error) {
	return f.createDraft(ctx, in)
}

func (f *fakeArticleService) Publish(ctx context.Context, articleID, actorID string) (*domain.Article, error) {
	return f.publish(ctx, articleID, actorID)
}

func (f *fakeArticleService) Unpublish(ctx context.Context, articleID, actorID string) (*domain.Article, error) {
	return f.unpublish(ctx, articleID, actorID)
}

func (f *fakeArticleService) UpdateContent(ctx context.Context, articleID, actorID string, in service.UpdateContentInput) (*domain.Article, error) {
	return f.updateContent(ctx, articleID, actorID, in)
}

func (f *fakeArticleService) SetFeaturedImage(ctx context.Context, articleID, actorID, imageURL string) (*domain.Article, error) {
	return f.setFeaturedImage(ctx, articleID, actorID, imageURL)
}

func (f *fakeArticleService) RemoveFeaturedImage(ctx context.Context, articleID, actorID string) (*domain.Article, error) {
	return f.removeFeaturedImage(ctx, articleID, actorID)
}

func (f *fakeArticleService) AddTag(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error) {
	return f.addTag(ctx, articleID, actorID, tagID)
}

func (f *fakeArticleService) RemoveTag(ctx context.Context, articleID, actorID, tagID string) (*domain.Article, error) {
	return f.removeTag(ctx, articleID, actorID, tagID)
}

func (f *fakeArticleService) UpdateTags(ctx context.Context, articleID, actorID string, tagIDs []string) (*domain.Article, error) {
	return f.updateTags(ctx, articleID, actorID, tagIDs)
}

func (f *fakeArticleService) Delete(ctx context.Context, articleID, actorID string) error {
	return f.delete(ctx, articleID, actorID)
}

func (f *fakeArticleService) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	return f.getByID(ctx, id)
}

func (f *fakeArticleService) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return f.getBySlug(ctx, slug)
}

type fakeCommentService struct {
	create        func(ctx context.Context, articleID, authorID, content string) (*domain.Comment, error)
	createReply   func(ctx context.Context, articleID, parentID, authorID, content string) (*domain.Comment, error)
	delete        func(ctx context.Context, commentID, actorID string) error
	listByArticle func(ctx context.Context, articleID string) ([]domain.Comment, error)
	listReplies   func(ctx context.Context, parentID string) ([]domain.Comment, error)
}

func (f *fakeCommentService) Create(ctx context.Context, articleID, authorID, content string) (*domain.Comment, error) {
	return f.create(ctx, articleID, authorID, content)
}

func (f *fakeCommentService) CreateReply(ctx context.Context, articleID, parentID, authorID, content string) (*domain.Comment, error) {
	return f.createReply(ctx, articleID, parentID, authorID, content)
}

func (f *fakeCommentService) Delete(ctx context.Context, commentID, actorID string) error {
	return f.delete(ctx, commentID, actorID)
}

func (f *fakeCommentService) ListByArticle(ctx context.Context, articleID string) ([]domain.Comment, error) {
	return f.listByArticle(ctx, articleID)
}

func (f *fakeCommentService) ListReplies(ctx context.Context, parentID string) ([]domain.Comment, error) {
	return f.listReplies(ctx, parentID)
}

type fakeReactionService struct {
	addClaps             func(ctx context.Context, articleID, userID string, count int) (*domain.Reaction, error)
	totalClapsForArticle func(ctx context.Context, articleID string) (int, error)
	userClaps            func(ctx context.Context, articleID, userID string) (*domain.Reaction, error)
}

func (f *fakeReactionService) AddClaps(ctx context.Context, articleID, userID string, count int) (*domain.Reaction, error) {
	return f.addClaps(ctx, articleID, userID, count)
}

func (f *fakeReactionService) TotalClapsForArticle(ctx context.Context, articleID string) (int, error) {
	return f.totalClapsForArticle(ctx, articleID)
}

func (f *fakeReactionService) UserClaps(ctx context.Context, articleID, userID string) (*domain.Reaction, error) {
	return f.userClaps(ctx, articleID, userID)
}

type fakeNotificationService struct {
	listForUser func(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	markRead    func(ctx context.Context, userID, notificationID string) error
	markAllRead func(ctx context.Context, userID string) (int64, error)
}

func (f *fakeNotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return f.listForUser(ctx, userID, unreadOnly, limit)
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return f.markRead(ctx, userID, notificationID)
}

func (f *fakeNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return f.markAllRead(ctx, userID)
}
