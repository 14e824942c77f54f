// Package prompt renders the text payload seeded into a fresh assistant
// session: a file reference, optionally narrowed to a line range.
package prompt

import (
	"strconv"
	"strings"
)

// MentionPrefix is the leading character assistants recognize as "this token
// names a file".
const MentionPrefix = "@"

// Template placeholders.
const (
	placeholderFile  = "{file}"
	placeholderStart = "{start}"
	placeholderEnd   = "{end}"
)

// Range is a 1-based inclusive line range with Start <= End.
type Range struct {
	Start int
	End   int
}

// NormalizeRange builds a Range from two line numbers in either order.
// Selection direction is not significant.
func NormalizeRange(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Builder renders prompts from the configured templates.
type Builder struct {
	// UseMentionPrefix prefixes file references with MentionPrefix.
	UseMentionPrefix bool
	// Template is used when no range is given. Placeholder: {file}.
	Template string
	// TemplateRange is used with a range. Placeholders: {file}, {start}, {end}.
	TemplateRange string
}

// FileRef returns the file reference token for relPath.
func (b Builder) FileRef(relPath string) string {
	if b.UseMentionPrefix {
		return MentionPrefix + relPath
	}
	return relPath
}

// Render produces the prompt for relPath. rng may be nil for a file-only
// prompt.
func (b Builder) Render(relPath string, rng *Range) string {
	if rng == nil {
		return strings.ReplaceAll(b.Template, placeholderFile, b.FileRef(relPath))
	}
	out := strings.ReplaceAll(b.TemplateRange, placeholderFile, b.FileRef(relPath))
	out = strings.ReplaceAll(out, placeholderStart, strconv.Itoa(rng.Start))
	out = strings.ReplaceAll(out, placeholderEnd, strconv.Itoa(rng.End))
	return out
}
