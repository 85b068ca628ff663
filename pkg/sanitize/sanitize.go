package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptTagRgx   = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	iframeTagRgx   = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>|<iframe\b[^>]*/?>`)
	eventAttrRgx   = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	javascriptRgx  = regexp.MustCompile(`(?i)javascript\s*:`)
	danglingTagRgx = regexp.MustCompile(`(?i)</?(?:script|iframe)\b[^>]*>`)
)

// SQL injection heuristics. These are substring checks, not a parser;
// they catch the common payloads and nothing more.
var sqlInjectionRgxs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bunion\s+(?:all\s+)?select\b`),
	regexp.MustCompile(`(?i)\b(?:or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(?i)'\s*(?:or|and)\s+'[^']*'\s*=\s*'`),
	regexp.MustCompile(`(?i)\b(?:drop|truncate|alter)\s+table\b`),
	regexp.MustCompile(`(?i);\s*(?:delete|insert|update)\s`),
	regexp.MustCompile(`(?i)\bexec(?:ute)?\s*\(`),
	regexp.MustCompile(`--\s*$`),
}

// NoSQL (Mongo-style) injection heuristics
var nosqlInjectionRgxs = []*regexp.Regexp{
	regexp.MustCompile(`\$where\b`),
	regexp.MustCompile(`\$(?:ne|gt|gte|lt|lte|in|nin|regex|exists)\b["']?\s*:`),
	regexp.MustCompile(`(?i)\bmapreduce\s*:`),
	regexp.MustCompile(`(?i)db\.\w+\.(?:find|remove|update|drop)\s*\(`),
}

// StripHTML removes script and iframe tags, inline event-handler
// attributes and javascript: URLs from s. The remaining markup is left
// alone; this is a filter for survey free text, not an HTML parser.
func StripHTML(s string) string {
	s = scriptTagRgx.ReplaceAllString(s, "")
	s = iframeTagRgx.ReplaceAllString(s, "")
	s = danglingTagRgx.ReplaceAllString(s, "")
	s = eventAttrRgx.ReplaceAllString(s, "")
	s = javascriptRgx.ReplaceAllString(s, "")
	return s
}

// Text sanitizes a free-text input: HTML stripping plus whitespace
// normalization at the edges.
func Text(s string) string {
	return strings.TrimSpace(StripHTML(s))
}

// LooksLikeSQLInjection reports whether s matches any SQL injection
// heuristic
func LooksLikeSQLInjection(s string) bool {
	for _, rgx := range sqlInjectionRgxs {
		if rgx.MatchString(s) {
			return true
		}
	}
	return false
}

// LooksLikeNoSQLInjection reports whether s matches any NoSQL injection
// heuristic
func LooksLikeNoSQLInjection(s string) bool {
	for _, rgx := range nosqlInjectionRgxs {
		if rgx.MatchString(s) {
			return true
		}
	}
	return false
}

// Suspicious reports whether s trips any injection heuristic. Suspicious
// input is flagged for the security audit log, not rejected.
func Suspicious(s string) bool {
	return LooksLikeSQLInjection(s) || LooksLikeNoSQLInjection(s)
}
