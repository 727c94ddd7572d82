// Package identity defines contributor identities and bot classification.
// Classification is pure and stateless; bot identities are excluded from
// authorship math but reported, never silently dropped.
package identity

import "strings"

// Identity is a (name, email) pair identifying a contributor.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Matches reports whether other refers to the same contributor.
// Either a case-insensitive name match or a case-insensitive exact email
// match counts; empty fields never match.
func (id Identity) Matches(other Identity) bool {
	if id.Name != "" && other.Name != "" && strings.EqualFold(id.Name, other.Name) {
		return true
	}
	if id.Email != "" && other.Email != "" && strings.EqualFold(id.Email, other.Email) {
		return true
	}
	return false
}

// String returns "name <email>" for display.
func (id Identity) String() string {
	if id.Email == "" {
		return id.Name
	}
	return id.Name + " <" + id.Email + ">"
}

// DefaultBotPatterns are the substrings that mark an identity as automated.
// Matched case-insensitively against both name and email.
var DefaultBotPatterns = []string{
	"bot",
	"dependabot",
	"github-actions",
	"renovate",
	"[bot]",
	"semantic-release",
	"greenkeeper",
	"snyk-bot",
	"codecov",
	"travis",
	"circleci",
}

// Classifier decides whether an identity is automated.
type Classifier struct {
	patterns []string
}

// NewClassifier creates a Classifier with the given substring patterns.
// An empty pattern list falls back to DefaultBotPatterns.
func NewClassifier(patterns []string) *Classifier {
	if len(patterns) == 0 {
		patterns = DefaultBotPatterns
	}
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return &Classifier{patterns: lowered}
}

// IsBot reports whether the identity looks like an automated contributor.
// Any pattern substring in the name or email qualifies, as do noreply-style
// email addresses.
func (c *Classifier) IsBot(id Identity) bool {
	name := strings.ToLower(id.Name)
	email := strings.ToLower(id.Email)

	for _, p := range c.patterns {
		if strings.Contains(name, p) || strings.Contains(email, p) {
			return true
		}
	}

	if strings.Contains(email, "noreply") || strings.Contains(email, "no-reply") {
		return true
	}

	return false
}
