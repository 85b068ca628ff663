package survey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBinaryValue(t *testing.T) {
	for _, value := range []string{"yes", "true", "1"} {
		got, err := ParseBinaryValue(value)
		assert.NoError(t, err)
		assert.True(t, got, value)
	}
	for _, value := range []string{"no", "false", "0"} {
		got, err := ParseBinaryValue(value)
		assert.NoError(t, err)
		assert.False(t, got, value)
	}
	for _, value := range []string{"", "maybe", "YES", "y"} {
		_, err := ParseBinaryValue(value)
		assert.Error(t, err, value)
	}
}

func TestCommentConfigFor(t *testing.T) {
	assert.Nil(t, CommentConfigFor(false, true, 5, 100))

	cfg := CommentConfigFor(true, true, 5, 100)
	assert.NotNil(t, cfg)
	assert.True(t, cfg.Required)
	assert.Equal(t, 5, cfg.MinLength)
	assert.Equal(t, 100, cfg.MaxLength)
}

func TestValidateBinaryComment(t *testing.T) {
	t.Run("nil config ignores the comment", func(t *testing.T) {
		assert.NoError(t, ValidateBinaryComment(true, "", nil))
		assert.NoError(t, ValidateBinaryComment(true, strings.Repeat("x", 10000), nil))
	})

	t.Run("yes with required comment missing", func(t *testing.T) {
		cfg := &CommentConfig{Enabled: true, Required: true}
		err := ValidateBinaryComment(true, "", cfg)
		assert.ErrorIs(t, err, ErrCommentRequired)
	})

	t.Run("yes without required comment passes when optional", func(t *testing.T) {
		cfg := &CommentConfig{Enabled: true, Required: false, MinLength: 10}
		assert.NoError(t, ValidateBinaryComment(true, "", cfg))
	})

	t.Run("no skips the required and minimum checks", func(t *testing.T) {
		cfg := &CommentConfig{Enabled: true, Required: true, MinLength: 10}
		assert.NoError(t, ValidateBinaryComment(false, "", cfg))
		assert.NoError(t, ValidateBinaryComment(false, "short", cfg))
	})

	t.Run("no still enforces the maximum", func(t *testing.T) {
		cfg := &CommentConfig{Enabled: true, MaxLength: 5}
		assert.Error(t, ValidateBinaryComment(false, "toolongcomment", cfg))
	})

	t.Run("yes enforces both bounds", func(t *testing.T) {
		cfg := &CommentConfig{Enabled: true, Required: true, MinLength: 5, MaxLength: 10}
		assert.Error(t, ValidateBinaryComment(true, "hey", cfg))
		assert.NoError(t, ValidateBinaryComment(true, "just fine", cfg))
		assert.Error(t, ValidateBinaryComment(true, "way past the limit", cfg))
	})

	t.Run("bounds count runes not bytes", func(t *testing.T) {
		cfg := &CommentConfig{Enabled: true, MaxLength: 4}
		assert.NoError(t, ValidateBinaryComment(true, "ññññ", cfg))
		assert.Error(t, ValidateBinaryComment(true, "ñññññ", cfg))
	})
}
