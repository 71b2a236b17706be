package domain

import "errors"

// Error is a business-rule failure with a stable machine-readable code.
// Aggregates return these instead of panicking; codes use the same
// snake_case convention as input validation errors.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NewError creates a new domain error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation errors - malformed input shape.
var (
	ErrInvalidSlug      = NewError("invalid_slug_format", "slug must be lowercase, hyphenated and url-safe")
	ErrInvalidImageURL  = NewError("invalid_image_url", "featured image must be an absolute http(s) url with an image extension")
	ErrEmptyContent     = NewError("empty_content", "article content is blank")
	ErrInvalidClapCount = NewError("invalid_clap_count", "clap count must be positive")
)

// State-conflict errors - operation invalid for the aggregate's current state.
var (
	ErrAlreadyPublished     = NewError("already_published", "article is already published")
	ErrCannotPublishDeleted = NewError("cannot_publish_deleted", "deleted articles cannot be published")
	ErrNotPublished         = NewError("not_published", "article is not published")
	ErrCannotUpdateDeleted  = NewError("cannot_update_deleted", "deleted articles cannot be updated")
	ErrNestingTooDeep       = NewError("nesting_too_deep", "replies to replies are not allowed")
	ErrClapLimitExceeded    = NewError("clap_limit_exceeded", "clap limit per article reached")
	ErrCannotEditDeleted    = NewError("cannot_edit_deleted", "deleted comments cannot be edited")
)

// Not-found errors - a referenced aggregate does not exist.
var (
	ErrArticleNotFound      = NewError("article_not_found", "article not found")
	ErrCommentNotFound      = NewError("comment_not_found", "comment not found")
	ErrUserNotFound         = NewError("user_not_found", "user not found")
	ErrReactionNotFound     = NewError("reaction_not_found", "reaction not found")
	ErrNotificationNotFound = NewError("notification_not_found", "notification not found")
)

// Authorization errors - resolved by the service layer, never inside an aggregate.
var (
	ErrNotArticleAuthor = NewError("not_article_author", "caller is not the article author")
	ErrNotCommentAuthor = NewError("not_comment_author", "caller is not the comment author")
)

// ErrConcurrentUpdate signals an optimistic-concurrency conflict; callers retry.
var ErrConcurrentUpdate = NewError("concurrent_update", "aggregate was modified concurrently")

// ErrorCode extracts the code from a (possibly wrapped) domain error,
// or "" for other errors.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
