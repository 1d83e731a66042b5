package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9 -]+`)
	slugSpaces  = regexp.MustCompile(`[\s-]+`)
)

// GenerateSlug creates a URL-friendly slug from a string.
// "First  Trade!" becomes "first-trade".
func GenerateSlug(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(strings.TrimSpace(slug), "-")
	return strings.Trim(slug, "-")
}
