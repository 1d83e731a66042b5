package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	scriptTagRegex = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	htmlTagRegex   = regexp.MustCompile(`<[^>]*>`)
	spaceRegex     = regexp.MustCompile(`\s+`)
)

// SanitizeText strips markup from admin-entered display text, collapses
// whitespace and enforces a length limit in runes. An empty result is an
// error only when required is set.
func SanitizeText(s string, maxLen int, required bool) (string, error) {
	s = scriptTagRegex.ReplaceAllString(s, "")
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))

	if s == "" && required {
		return "", errors.New("text cannot be empty")
	}
	if utf8.RuneCountInString(s) > maxLen {
		return "", errors.New("text exceeds maximum length")
	}
	return s, nil
}
