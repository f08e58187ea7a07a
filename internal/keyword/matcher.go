package keyword

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Matcher finds keywords in page text.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	keywords []string
}

// NewMatcher creates a Matcher for phrases.
// Phrases are lowercased and trimmed; empty phrases are dropped and
// duplicates keep their first position.
func NewMatcher(phrases []string) *Matcher {
	return &Matcher{keywords: Normalize(phrases)}
}

// Normalize returns the lowercased, trimmed and de-duplicated form of phrases,
// preserving order.
func Normalize(phrases []string) []string {
	lower := cases.Lower(language.Und)
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = lower.String(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Keywords returns the normalized keyword list in order.
func (m *Matcher) Keywords() []string {
	return slices.Clone(m.keywords)
}

// Len returns the number of keywords.
func (m *Matcher) Len() int {
	return len(m.keywords)
}

// Match returns the keywords contained in text, in keyword-list order.
// It returns an empty slice when nothing matches.
func (m *Matcher) Match(text string) []string {
	found := make([]string, 0)
	if text == "" {
		return found
	}

	// cases.Caser is stateful, so each call gets its own.
	haystack := cases.Lower(language.Und).String(text)
	for _, kw := range m.keywords {
		if strings.Contains(haystack, kw) {
			found = append(found, kw)
		}
	}
	return found
}
