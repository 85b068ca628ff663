package survey

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrCommentRequired is returned when a binary question was answered
// "yes" and the required comment is missing
var ErrCommentRequired = errors.New("comment is required for an affirmative answer")

// CommentConfig controls the conditional free-text comment on a binary
// (yes/no) question. The comment is only solicited, and only validated,
// when the answer is affirmative.
type CommentConfig struct {
	Enabled   bool
	Required  bool
	MinLength int
	MaxLength int
}

// CommentConfigFor extracts the comment config from question columns
func CommentConfigFor(enabled, required bool, minLen, maxLen int) *CommentConfig {
	if !enabled {
		return nil
	}
	return &CommentConfig{
		Enabled:   true,
		Required:  required,
		MinLength: minLen,
		MaxLength: maxLen,
	}
}

// ValidateBinaryComment validates the comment on a binary answer.
//
//   - nil or disabled config: the comment is ignored entirely.
//   - answer "no": the comment is optional and never checked against
//     MinLength.
//   - answer "yes" with Required set and no comment: ErrCommentRequired.
//   - any present comment must fit [MinLength, MaxLength] when bounds
//     are set (zero means unbounded).
func ValidateBinaryComment(answerYes bool, comment string, cfg *CommentConfig) error {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	length := utf8.RuneCountInString(comment)

	if !answerYes {
		if cfg.MaxLength > 0 && length > cfg.MaxLength {
			return fmt.Errorf("comment exceeds maximum length of %d", cfg.MaxLength)
		}
		return nil
	}

	if comment == "" {
		if cfg.Required {
			return ErrCommentRequired
		}
		return nil
	}

	if cfg.MinLength > 0 && length < cfg.MinLength {
		return fmt.Errorf("comment must be at least %d characters", cfg.MinLength)
	}
	if cfg.MaxLength > 0 && length > cfg.MaxLength {
		return fmt.Errorf("comment exceeds maximum length of %d", cfg.MaxLength)
	}

	return nil
}

// ParseBinaryValue interprets a raw binary answer value. Accepted
// affirmatives are "yes", "true" and "1"; negatives are "no", "false"
// and "0". Anything else is rejected.
func ParseBinaryValue(value string) (bool, error) {
	switch value {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid binary answer %q", value)
}
