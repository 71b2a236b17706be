package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/service"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articleService service.ArticleServiceInterface
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// ArticleResponse represents an article in the API response.
type ArticleResponse struct {
	ID               string   `json:"id"`
	AuthorID         string   `json:"author_id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Subtitle         string   `json:"subtitle,omitempty"`
	Content          string   `json:"content"`
	FeaturedImageURL *string  `json:"featured_image_url,omitempty"`
	Status           string   `json:"status"`
	ReadingTime      int      `json:"reading_time"`
	TagIDs           []string `json:"tag_ids,omitempty"`
	RevisionCount    int      `json:"revision_count"`
	CreatedAt        string   `json:"created_at"`
	PublishedAt      *string  `json:"published_at,omitempty"`
	UpdatedAt        string   `json:"updated_at"`
}

// toArticleResponse converts a domain.Article to an ArticleResponse.
func toArticleResponse(a *domain.Article) ArticleResponse {
	response := ArticleResponse{
		ID:               a.ID,
		AuthorID:         a.AuthorID,
		Title:            a.Title,
		Slug:             a.Slug,
		Subtitle:         a.Subtitle,
		Content:          a.Content,
		FeaturedImageURL: a.FeaturedImageURL,
		Status:           string(a.Status),
		ReadingTime:      a.ReadingTime,
		TagIDs:           a.TagIDs,
		RevisionCount:    len(a.Revisions),
		CreatedAt:        a.CreatedAt.Format(TimeFormat),
		UpdatedAt:        a.UpdatedAt.Format(TimeFormat),
	}
	if a.PublishedAt != nil {
		publishedAt := a.PublishedAt.Format(TimeFormat)
		response.PublishedAt = &publishedAt
	}
	return response
}

type createDraftRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
}

// CreateDraft handles POST /api/v1/articles
func (h *ArticleHandler) CreateDraft(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articleService.CreateDraft(c.Request.Context(), service.CreateDraftInput{
		AuthorID: actor,
		Title:    req.Title,
		Slug:     req.Slug,
		Subtitle: req.Subtitle,
		Content:  req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(article))
}

// GetArticle handles GET /api/v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// GetArticleBySlug handles GET /api/v1/articles/slug/:slug
func (h *ArticleHandler) GetArticleBySlug(c *gin.Context) {
	article, err := h.articleService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// Publish handles POST /api/v1/articles/:id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	h.mutate(c, h.articleService.Publish)
}

// Unpublish handles POST /api/v1/articles/:id/unpublish
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	h.mutate(c, h.articleService.Unpublish)
}

type updateContentRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
}

// UpdateContent handles PUT /api/v1/articles/:id/content
func (h *ArticleHandler) UpdateContent(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req updateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articleService.UpdateContent(c.Request.Context(), c.Param("id"), actor, service.UpdateContentInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

type setImageRequest struct {
	ImageURL string `json:"image_url"`
}

// SetFeaturedImage handles PUT /api/v1/articles/:id/image
func (h *ArticleHandler) SetFeaturedImage(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req setImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articleService.SetFeaturedImage(c.Request.Context(), c.Param("id"), actor, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// RemoveFeaturedImage handles DELETE /api/v1/articles/:id/image
func (h *ArticleHandler) RemoveFeaturedImage(c *gin.Context) {
	h.mutate(c, h.articleService.RemoveFeaturedImage)
}

// AddTag handles PUT /api/v1/articles/:id/tags/:tagID
func (h *ArticleHandler) AddTag(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	article, err := h.articleService.AddTag(c.Request.Context(), c.Param("id"), actor, c.Param("tagID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// RemoveTag handles DELETE /api/v1/articles/:id/tags/:tagID
func (h *ArticleHandler) RemoveTag(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	article, err := h.articleService.RemoveTag(c.Request.Context(), c.Param("id"), actor, c.Param("tagID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

type updateTagsRequest struct {
	TagIDs []string `json:"tag_ids"`
}

// UpdateTags handles PUT /api/v1/articles/:id/tags
func (h *ArticleHandler) UpdateTags(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req updateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articleService.UpdateTags(c.Request.Context(), c.Param("id"), actor, req.TagIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// DeleteArticle handles DELETE /api/v1/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// mutate runs an (articleID, actorID) command and renders the updated article.
func (h *ArticleHandler) mutate(c *gin.Context, op func(ctx context.Context, articleID, actor string) (*domain.Article, error)) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	article, err := op(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}
