package parsing

import (
	"regexp"
	"strings"
)

var (
	slugStripPattern = regexp.MustCompile(`[^a-z0-9\s]`)
	slugSpacePattern = regexp.MustCompile(`\s+`)
)

// maxSlugLength bounds generated criterion ids.
const maxSlugLength = 50

// slugify generates a lowercase underscore-separated criterion id from a
// category display name. Display names keep their original casing; only the
// id is normalized.
func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = slugSpacePattern.ReplaceAllString(slug, "_")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}

// nonEmptyLines splits text into trimmed lines, dropping blank ones. Category
// and level matching operates on this view so indentation and blank spacing
// in the teacher's text never matter.
func nonEmptyLines(text string) []string {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
