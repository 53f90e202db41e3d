// Package rules classifies failure messages and renders the explanation
// shown to the learner. Classification is substring matching over an ordered
// rule list: the first matching rule wins, and a compiled-in fallback
// guarantees every message gets an explanation.
package rules

import "strings"

// MatchKind selects how a rule pattern is compared against the message
type MatchKind string

const (
	// MatchContains matches when the message contains the pattern,
	// case-sensitively
	MatchContains MatchKind = "contains"
	// MatchIContains matches when the lowercased message contains the
	// lowercased pattern
	MatchIContains MatchKind = "icontains"
)

// Rule pairs a message pattern with the explanation template rendered when
// the pattern matches
type Rule struct {
	Name        string    `yaml:"name"`
	Match       MatchKind `yaml:"match,omitempty"`
	Pattern     string    `yaml:"pattern"`
	Explanation string    `yaml:"explanation"`
}

// Matches reports whether the rule applies to the message
func (r *Rule) Matches(message string) bool {
	switch r.Match {
	case MatchIContains:
		return strings.Contains(strings.ToLower(message), strings.ToLower(r.Pattern))
	case MatchContains:
		return strings.Contains(message, r.Pattern)
	default:
		return strings.Contains(message, r.Pattern)
	}
}

// SetDefaults fills in the default match kind
func (r *Rule) SetDefaults() {
	if r.Match == "" {
		r.Match = MatchContains
	}
}
