package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ChangelogEntry is one release section of CHANGELOG.md. Content holds
// the raw markdown between this entry's heading and the next.
type ChangelogEntry struct {
	Version string
	Date    string
	Content string
}

// Changelog is the parsed CHANGELOG.md: release entries in file order
// plus the link definitions at the bottom of the file.
type Changelog struct {
	Entries []ChangelogEntry
	Links   map[string]string
}

// FindVersion returns the entry for a version, tolerating a leading "v"
// on either side so release tags match changelog headings.
func (c *Changelog) FindVersion(version string) *ChangelogEntry {
	want := strings.TrimPrefix(version, "v")
	for i := range c.Entries {
		if strings.TrimPrefix(c.Entries[i].Version, "v") == want {
			return &c.Entries[i]
		}
	}
	return nil
}

// entrySpan marks where a release heading sits in the source, so entry
// content can be sliced out between consecutive headings.
type entrySpan struct {
	version      string
	date         string
	headingStart int
	contentStart int
}

// Parse reads a Keep a Changelog markdown document into a Changelog.
// Every level-2 heading starts a release entry; content runs until the
// next level-2 heading or end of file.
func Parse(source []byte) (*Changelog, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	changelog := &Changelog{Links: make(map[string]string)}
	for _, ref := range ctx.References() {
		changelog.Links[string(ref.Label())] = string(ref.Destination())
	}

	spans := collectEntrySpans(doc, source)

	for i, span := range spans {
		contentEnd := len(source)
		if i+1 < len(spans) {
			contentEnd = spans[i+1].headingStart
		}

		content := ""
		if span.contentStart < contentEnd {
			content = strings.TrimSpace(string(source[span.contentStart:contentEnd]))
		}

		changelog.Entries = append(changelog.Entries, ChangelogEntry{
			Version: span.version,
			Date:    span.date,
			Content: content,
		})
	}

	return changelog, nil
}

func collectEntrySpans(doc ast.Node, source []byte) []entrySpan {
	var spans []entrySpan

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := splitVersionHeading(headingText(heading, source))

		span := entrySpan{version: version, date: date}
		if lines := heading.Lines(); lines.Len() > 0 {
			span.headingStart = lines.At(0).Start
			span.contentStart = lines.At(lines.Len() - 1).Stop
		}
		spans = append(spans, span)

		return ast.WalkContinue, nil
	})

	return spans
}

// headingText flattens a heading's text, descending into the link node
// that "[X.Y.Z]" headings produce once their link definition resolves.
func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			buf.Write(typed.Segment.Value(source))
		case *ast.Link:
			for inner := typed.FirstChild(); inner != nil; inner = inner.NextSibling() {
				if textNode, ok := inner.(*ast.Text); ok {
					buf.Write(textNode.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}

// splitVersionHeading pulls the version and release date out of a
// heading like "[0.2.0] - 2026-06-10" or the bare "Unreleased" form.
func splitVersionHeading(heading string) (version, date string) {
	heading = strings.TrimSpace(heading)
	heading = strings.TrimPrefix(heading, "[")

	if idx := strings.Index(heading, "]"); idx != -1 {
		version = heading[:idx]
		rest := strings.TrimSpace(heading[idx+1:])
		if strings.HasPrefix(rest, "- ") {
			date = strings.TrimSpace(rest[2:])
		}
		return version, date
	}

	if idx := strings.Index(heading, " - "); idx != -1 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+3:])
	}

	return heading, ""
}
