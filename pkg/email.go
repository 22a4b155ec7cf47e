package pkg

import "regexp"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the string looks like an email address.
// Format check only, the upstream API does the authoritative validation.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
