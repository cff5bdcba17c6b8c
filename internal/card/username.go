package card

import (
	"regexp"
	"strings"

	"community_cards/internal/domain"
)

var handlePattern = regexp.MustCompile(`^@?[a-zA-Z0-9_]+$`)

// NormalizeUsername returns the handle with exactly one leading "@".
// NormalizeUsername(NormalizeUsername(s)) == NormalizeUsername(s).
func NormalizeUsername(s string) string {
	return "@" + StripMarker(s)
}

// StripMarker removes surrounding space and any leading "@" characters.
func StripMarker(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "@")
}

// ValidHandle reports whether s is a well-formed handle, with or without "@".
func ValidHandle(s string) bool {
	return handlePattern.MatchString(s)
}

// ValidateHandle checks the raw input of the username field.
func ValidateHandle(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.ErrHandleRequired
	}
	if !ValidHandle(s) {
		return domain.ErrInvalidHandle
	}
	return nil
}
