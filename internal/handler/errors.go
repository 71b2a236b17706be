package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/logger"
	"github.com/rokasce/medium-clone-sub000/internal/middleware"
)

// statusForCode maps domain error codes to HTTP status codes.
// Validation failures are 400, state conflicts 409, missing aggregates 404,
// authorization failures 403. Anything unrecognized is a 500.
var statusForCode = map[string]int{
	"invalid_slug_format": http.StatusBadRequest,
	"invalid_image_url":   http.StatusBadRequest,
	"empty_content":       http.StatusBadRequest,
	"invalid_clap_count":  http.StatusBadRequest,

	"already_published":      http.StatusConflict,
	"cannot_publish_deleted": http.StatusConflict,
	"not_published":          http.StatusConflict,
	"cannot_update_deleted":  http.StatusConflict,
	"nesting_too_deep":       http.StatusConflict,
	"clap_limit_exceeded":    http.StatusConflict,
	"cannot_edit_deleted":    http.StatusConflict,
	"concurrent_update":      http.StatusConflict,

	"article_not_found":      http.StatusNotFound,
	"comment_not_found":      http.StatusNotFound,
	"user_not_found":         http.StatusNotFound,
	"reaction_not_found":     http.StatusNotFound,
	"notification_not_found": http.StatusNotFound,

	"not_article_author": http.StatusForbidden,
	"not_comment_author": http.StatusForbidden,
}

// respondError writes the error as JSON with the appropriate status code.
func respondError(c *gin.Context, err error) {
	// Field-level validation failures carry per-field codes
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": verrs,
		})
		return
	}

	if code := domain.ErrorCode(err); code != "" {
		status, ok := statusForCode[code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": code, "message": err.Error()})
		return
	}

	logger.Error("unhandled error",
		"request_id", middleware.GetRequestID(c),
		"error", err.Error(),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}

// actorID extracts the authenticated user from the X-User-ID header.
// Authentication itself lives at the gateway; this service trusts the header.
func actorID(c *gin.Context) (string, bool) {
	id := c.GetHeader(HeaderUserID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
		return "", false
	}
	return id, true
}
