package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validChangelog = `# Changelog

All notable changes to OrgPulse will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]

### Added
- Microclimate results aggregation endpoint

## [0.2.0] - 2026-06-10

### Added
- Survey templates with instantiate-from-template flow
- Anonymous response invitations with single-use tokens

### Fixed
- Binary questions no longer require a comment on "no" answers

## [0.1.0] - 2026-04-01

### Added
- Company, department and user management
- Survey lifecycle and response collection

[Unreleased]: https://github.com/orgpulse/orgpulse/compare/v0.2.0...HEAD
[0.2.0]: https://github.com/orgpulse/orgpulse/compare/v0.1.0...v0.2.0
[0.1.0]: https://github.com/orgpulse/orgpulse/releases/tag/v0.1.0
`

func TestParse(t *testing.T) {
	changelog, err := Parse([]byte(validChangelog))
	require.NoError(t, err)
	require.Len(t, changelog.Entries, 3)

	assert.Equal(t, "Unreleased", changelog.Entries[0].Version)
	assert.Empty(t, changelog.Entries[0].Date)

	assert.Equal(t, "0.2.0", changelog.Entries[1].Version)
	assert.Equal(t, "2026-06-10", changelog.Entries[1].Date)
	assert.Contains(t, changelog.Entries[1].Content, "Anonymous response invitations")

	assert.Len(t, changelog.Links, 3)
	assert.Equal(t, "https://github.com/orgpulse/orgpulse/compare/v0.1.0...v0.2.0", changelog.Links["0.2.0"])
}

func TestFindVersion(t *testing.T) {
	changelog, _ := Parse([]byte(validChangelog))

	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{"exact version", "0.2.0", "0.2.0"},
		{"with v prefix", "v0.2.0", "0.2.0"},
		{"older version", "0.1.0", "0.1.0"},
		{"unreleased", "Unreleased", "Unreleased"},
		{"non-existent", "3.0.0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := changelog.FindVersion(tt.version)
			if tt.expected == "" {
				assert.Nil(t, entry)
			} else {
				require.NotNil(t, entry)
				assert.Equal(t, tt.expected, entry.Version)
			}
		})
	}
}

func TestValidateValid(t *testing.T) {
	result := Validate([]byte(validChangelog))
	assert.True(t, result.IsValid(), "expected valid changelog, got errors: %v", result.Errors)
}

func TestValidateMissingTitle(t *testing.T) {
	changelog := `## [Unreleased]

## [0.1.0] - 2026-04-01

### Added
- Something

[Unreleased]: https://example.com
[0.1.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasError(result, "Missing changelog title (# Changelog)"))
}

func TestValidateMissingUnreleased(t *testing.T) {
	changelog := `# Changelog

## [0.1.0] - 2026-04-01

### Added
- Something

[0.1.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasError(result, "Missing [Unreleased] section"))
}

func TestValidateInvalidDate(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [0.1.0] - 01-04-2026

### Added
- Something

[Unreleased]: https://example.com
[0.1.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "ISO 8601"))
}

func TestValidateInvalidChangeType(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

### New
- Something

[Unreleased]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "Invalid change type"))
}

func TestValidateDuplicateVersion(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [0.1.0] - 2026-04-01

### Added
- Something

## [0.1.0] - 2026-04-02

### Fixed
- Something else

[Unreleased]: https://example.com
[0.1.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "already appears on line"))
}

func TestValidateOutOfOrderReleases(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [0.1.0] - 2026-04-01

### Added
- Something

## [0.2.0] - 2026-06-10

### Added
- Something newer

[Unreleased]: https://example.com
[0.1.0]: https://example.com
[0.2.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "newest first"))
}

func TestValidateMissingLinkDefinition(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [0.1.0] - 2026-04-01

### Added
- Something
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "Missing link definition for [Unreleased]"))
	assert.True(t, hasErrorContaining(result, "Missing link definition for version [0.1.0]"))
}

func hasError(result *ValidationResult, message string) bool {
	for _, e := range result.Errors {
		if e.Message == message {
			return true
		}
	}
	return false
}

func hasErrorContaining(result *ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
