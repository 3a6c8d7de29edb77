package contact

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Input is a contact-form submission. Website is the honeypot: humans never
// see the field, so any value means a bot filled it.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
	Website string `json:"website,omitempty"`
}

// SubscribeInput is an email-capture submission with the same honeypot.
type SubscribeInput struct {
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
}

// IsBot reports whether the honeypot field was filled.
func (in Input) IsBot() bool {
	return strings.TrimSpace(in.Website) != ""
}

func (in SubscribeInput) IsBot() bool {
	return strings.TrimSpace(in.Website) != ""
}

// Validate checks field lengths and formats and returns per-field problems.
// An empty map means the input is acceptable.
func (in Input) Validate() map[string]string {
	details := map[string]string{}

	name := strings.TrimSpace(in.Name)
	if len(name) < 2 || len(name) > 100 {
		details["name"] = "name must be between 2 and 100 characters"
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		details["email"] = "a valid email address is required"
	}
	msg := strings.TrimSpace(in.Message)
	if len(msg) < 10 || len(msg) > 5000 {
		details["message"] = "message must be between 10 and 5000 characters"
	}
	// Phone is never a reason to reject: an unparseable number is dropped at
	// submission time instead.
	return details
}

// Validate checks the captured email address.
func (in SubscribeInput) Validate() map[string]string {
	details := map[string]string{}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		details["email"] = "a valid email address is required"
	}
	return details
}
