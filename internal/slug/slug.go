// Package slug derives URL-safe article identifiers from titles.
package slug

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlphanum = regexp.MustCompile(`[^a-z0-9]+`)

// Make derives a slug from a title: lowercase, runs of anything outside
// [a-z0-9] collapse to a single hyphen, leading and trailing hyphens are
// trimmed. The same title always yields the same slug.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonAlphanum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix appends a short random fragment to a base slug. Used when the
// store's unique index rejects the bare slug; the result stays within the
// slug character set.
func WithSuffix(base string) string {
	frag := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	if base == "" {
		return frag
	}
	return base + "-" + frag
}
