package validator

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const (
	maxTitleLength    = 200
	maxSubtitleLength = 300
	maxCommentWords   = 500
	maxTagCount       = 10
)

// Validator provides input-shape validation for commands. Business rules
// (state transitions, caps) stay in the aggregates; this layer only rejects
// malformed input before an aggregate is ever touched.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// DraftInput is the input shape for creating a draft.
type DraftInput struct {
	AuthorID string
	Title    string
	Slug     string
	Subtitle string
	Content  string
}

// ValidateDraft validates a draft creation command.
func (v *Validator) ValidateDraft(in DraftInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.AuthorID,
			validation.Required.Error("author_id_required"),
			is.UUID.Error("invalid_author_id"),
		),
		validation.Field(&in.Title,
			validation.Required.Error("title_required"),
			validation.Length(1, maxTitleLength).Error("title_too_long"),
		),
		validation.Field(&in.Slug,
			validation.Required.Error("slug_required"),
			validation.Match(slugRegex).Error("invalid_slug_format"),
		),
		validation.Field(&in.Subtitle,
			validation.Length(0, maxSubtitleLength).Error("subtitle_too_long"),
		),
	)
}

// ContentInput is the input shape for updating article content.
type ContentInput struct {
	Title    string
	Subtitle string
	Content  string
}

// ValidateContent validates a content update command.
func (v *Validator) ValidateContent(in ContentInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("title_required"),
			validation.Length(1, maxTitleLength).Error("title_too_long"),
		),
		validation.Field(&in.Subtitle,
			validation.Length(0, maxSubtitleLength).Error("subtitle_too_long"),
		),
	)
}

// ValidateImageURL checks the input shape of a featured-image URL. The
// aggregate applies its own stricter rules (scheme, extension, length) on
// top of this.
func (v *Validator) ValidateImageURL(rawURL string) error {
	return validation.Validate(rawURL,
		validation.Required.Error("image_url_required"),
		is.URL.Error("invalid_image_url"),
	)
}

// ValidateCommentContent validates a comment body.
func (v *Validator) ValidateCommentContent(content string) error {
	return validation.Validate(content,
		validation.Required.Error("content_required"),
		validation.By(wordCountRule(maxCommentWords)),
	)
}

// ValidateTagIDs validates a full tag-set replacement.
func (v *Validator) ValidateTagIDs(ids []string) error {
	return validation.Validate(ids,
		validation.Length(0, maxTagCount).Error("too_many_tags"),
		validation.Each(validation.Required.Error("empty_tag_id")),
	)
}

// wordCountRule creates a validation rule for max word count.
func wordCountRule(maxWords int) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if len(strings.Fields(strings.TrimSpace(s))) > maxWords {
			return validation.NewError("content_too_long", "content exceeds word limit")
		}
		return nil
	}
}
