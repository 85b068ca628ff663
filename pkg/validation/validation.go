package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/orgpulse/orgpulse/pkg/rbac"
)

const (
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 8
	// MaxNameLength bounds display names
	MaxNameLength = 200
)

var emailRgx = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Issue is a single field validation failure
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues collects validation failures for a request
type Issues []Issue

// Add appends a failure for a field
func (i *Issues) Add(field, format string, args ...interface{}) {
	*i = append(*i, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether no failures were recorded
func (i Issues) Empty() bool {
	return len(i) == 0
}

// ValidEmail reports whether s is a plausible email address
func ValidEmail(s string) bool {
	return emailRgx.MatchString(s)
}

// CheckEmail records an issue when email is missing or malformed
func CheckEmail(issues *Issues, email string) {
	if email == "" {
		issues.Add("email", "email is required")
		return
	}
	if !ValidEmail(email) {
		issues.Add("email", "invalid email format")
	}
}

// CheckPassword records an issue when the password is too short
func CheckPassword(issues *Issues, password string) {
	if password == "" {
		issues.Add("password", "password is required")
		return
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		issues.Add("password", "password must be at least %d characters", MinPasswordLength)
	}
}

// CheckName records an issue when the name is missing or too long
func CheckName(issues *Issues, name string) {
	if name == "" {
		issues.Add("name", "name is required")
		return
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		issues.Add("name", "name must be at most %d characters", MaxNameLength)
	}
}

// CheckRole records an issue when the role is not in the RBAC table
func CheckRole(issues *Issues, role string) {
	if role == "" {
		issues.Add("role", "role is required")
		return
	}
	if !rbac.Valid(role) {
		issues.Add("role", "invalid role %q", role)
	}
}

// CheckRequired records an issue when a required string field is empty
func CheckRequired(issues *Issues, field, value string) {
	if value == "" {
		issues.Add(field, "%s is required", field)
	}
}
