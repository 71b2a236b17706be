package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/service"
)

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	commentService service.CommentServiceInterface
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CommentResponse represents a comment in the API response.
type CommentResponse struct {
	ID        string  `json:"id"`
	ArticleID string  `json:"article_id"`
	AuthorID  string  `json:"author_id"`
	ParentID  *string `json:"parent_id,omitempty"`
	Content   string  `json:"content"`
	Status    string  `json:"status"`
	LikeCount int     `json:"like_count"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// toCommentResponse converts a domain.Comment to a CommentResponse.
func toCommentResponse(cm *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		ArticleID: cm.ArticleID,
		AuthorID:  cm.AuthorID,
		ParentID:  cm.ParentID,
		Content:   cm.Content,
		Status:    string(cm.Status),
		LikeCount: cm.LikeCount,
		CreatedAt: cm.CreatedAt.Format(TimeFormat),
		UpdatedAt: cm.UpdatedAt.Format(TimeFormat),
	}
}

func toCommentResponses(comments []domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = toCommentResponse(&comments[i])
	}
	return responses
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment handles POST /api/v1/articles/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), c.Param("id"), actor, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

type createReplyRequest struct {
	ArticleID string `json:"article_id"`
	Content   string `json:"content"`
}

// CreateReply handles POST /api/v1/comments/:id/replies
func (h *CommentHandler) CreateReply(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req createReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.commentService.CreateReply(c.Request.Context(), req.ArticleID, c.Param("id"), actor, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(reply))
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListComments handles GET /api/v1/articles/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListByArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": toCommentResponses(comments)})
}

// ListReplies handles GET /api/v1/comments/:id/replies
func (h *CommentHandler) ListReplies(c *gin.Context) {
	replies, err := h.commentService.ListReplies(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": toCommentResponses(replies)})
}
