// Package streak implements the core of the bot: detecting forbidden words,
// computing the time since the previous offense, and rendering the reply
// messages. Everything in this package is pure and store-agnostic.
package streak

import (
	"strings"
)

// Detector matches message text against a fixed set of forbidden substrings.
// Matching is case-insensitive and deliberately has no word-boundary logic:
// "zf" matches inside "abzfcd" too.
type Detector struct {
	words []string
}

// NewDetector creates a Detector from the configured word list.
// Words are normalized to lower case once, at construction.
func NewDetector(words []string) *Detector {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			normalized = append(normalized, w)
		}
	}
	return &Detector{words: normalized}
}

// Match reports whether text contains any forbidden substring.
// Empty text never matches.
func (d *Detector) Match(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, w := range d.words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
