package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/service"
)

// ReactionHandler handles clap-related HTTP requests.
type ReactionHandler struct {
	reactionService service.ReactionServiceInterface
}

// NewReactionHandler creates a new ReactionHandler.
func NewReactionHandler(reactionService service.ReactionServiceInterface) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
	}
}

// ReactionResponse represents a user's claps on an article.
type ReactionResponse struct {
	ArticleID     string `json:"article_id"`
	UserID        string `json:"user_id"`
	ClapCount     int    `json:"clap_count"`
	LastClappedAt string `json:"last_clapped_at"`
}

func toReactionResponse(r *domain.Reaction) ReactionResponse {
	return ReactionResponse{
		ArticleID:     r.ArticleID,
		UserID:        r.UserID,
		ClapCount:     r.ClapCount,
		LastClappedAt: r.LastClappedAt.Format(TimeFormat),
	}
}

type addClapsRequest struct {
	Count int `json:"count"`
}

// AddClaps handles POST /api/v1/articles/:id/claps
func (h *ReactionHandler) AddClaps(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req addClapsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reaction, err := h.reactionService.AddClaps(c.Request.Context(), c.Param("id"), actor, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReactionResponse(reaction))
}

// GetClaps handles GET /api/v1/articles/:id/claps
// Returns the article total plus the calling user's own count when the
// X-User-ID header is present.
func (h *ReactionHandler) GetClaps(c *gin.Context) {
	articleID := c.Param("id")

	total, err := h.reactionService.TotalClapsForArticle(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"article_id": articleID, "total_claps": total}

	if userID := c.GetHeader(HeaderUserID); userID != "" {
		reaction, err := h.reactionService.UserClaps(c.Request.Context(), articleID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		response["user_claps"] = reaction.ClapCount
	}

	c.JSON(http.StatusOK, response)
}
