package contact

import (
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
	"github.com/chukwumaoranu/portfolio-gw/pkg"
)

const (
	minNameLen    = 2
	minSubjectLen = 5
	minMessageLen = 10
)

// Validate checks a visitor message before it goes anywhere near the
// upstream API. Returns one message per failed field, keyed by the
// field's json name, all failures at once.
func Validate(message upstream.ContactMessage) map[string]string {
	fieldErrors := map[string]string{}

	if len(message.Name) < minNameLen {
		fieldErrors["name"] = "Name must be at least 2 characters"
	}
	if !pkg.ValidEmail(message.Email) {
		fieldErrors["email"] = "Please enter a valid email address"
	}
	if len(message.Subject) < minSubjectLen {
		fieldErrors["subject"] = "Subject must be at least 5 characters"
	}
	if len(message.Message) < minMessageLen {
		fieldErrors["message"] = "Message must be at least 10 characters"
	}

	return fieldErrors
}
