// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	separators = regexp.MustCompile(`-+`)
	stripped   = regexp.MustCompile(`[^\w\s]`)
	spaces     = regexp.MustCompile(`\s+`)
	valid      = regexp.MustCompile(`^[a-z0-9_]+(-[a-z0-9_]+)*$`)
)

// Derive lowercases name, drops punctuation and joins the remaining words with
// single hyphens. "Milano Slim-Fit, Jeans!" becomes "milano-slim-fit-jeans".
func Derive(name string) string {
	s := strings.ToLower(name)
	s = separators.ReplaceAllString(s, " ")
	s = stripped.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return spaces.ReplaceAllString(s, "-")
}

// Valid reports whether s is a non-empty slug made of lowercase words joined by hyphens.
func Valid(s string) bool {
	return valid.MatchString(s)
}
