package utils

import (
	"regexp"
	"strings"
)

// sanitize.go - input validation helpers

var usernameRe = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

// ValidateUsername checks if a username is a valid public page handle.
// Lowercase letters, numbers, underscores, and hyphens only, 3-30 characters.
// Public pages are served at /:username, so the charset must stay URL-safe.
func ValidateUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// NormalizeUsername lowercases and trims a username before validation or lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
