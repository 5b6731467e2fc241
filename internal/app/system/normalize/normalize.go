// Package normalize holds small input-normalization helpers applied before
// values reach the database.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases a role string and maps unknown values to participant.
func Role(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return "admin"
	case "sponsor":
		return "sponsor"
	default:
		return "participant"
	}
}
