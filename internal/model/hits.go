package model

import (
	"encoding/json"
	"slices"
)

// KeywordHits maps every keyword to the set of URLs where it was found.
// Every keyword is present from the start with an empty set, and both the
// keywords and their URLs keep insertion order.
//
// KeywordHits is not safe for concurrent use. A scan mutates it from a
// single goroutine.
type KeywordHits struct {
	keywords []string
	urls     map[string][]string
	seen     map[string]map[string]struct{}
}

// KeywordHit is one entry of KeywordHits.
type KeywordHit struct {
	// Keyword is the matched phrase.
	Keyword string `json:"keyword"`

	// URLs are the pages the keyword was found on.
	URLs []string `json:"urls"`
}

// NewKeywordHits creates a hit map with an empty URL set for every keyword.
// Duplicate keywords are collapsed to their first occurrence.
func NewKeywordHits(keywords []string) *KeywordHits {
	h := &KeywordHits{
		keywords: make([]string, 0, len(keywords)),
		urls:     make(map[string][]string, len(keywords)),
		seen:     make(map[string]map[string]struct{}, len(keywords)),
	}
	for _, kw := range keywords {
		if _, ok := h.seen[kw]; ok {
			continue
		}
		h.keywords = append(h.keywords, kw)
		h.urls[kw] = []string{}
		h.seen[kw] = make(map[string]struct{})
	}
	return h
}

// Record adds url to the set of keyword. Recording the same pair twice has
// no effect. Keywords that were not registered are ignored.
func (h *KeywordHits) Record(keyword, url string) {
	seen, ok := h.seen[keyword]
	if !ok {
		return
	}
	if _, dup := seen[url]; dup {
		return
	}
	seen[url] = struct{}{}
	h.urls[keyword] = append(h.urls[keyword], url)
}

// URLs returns a copy of the URL set of keyword.
func (h *KeywordHits) URLs(keyword string) []string {
	return slices.Clone(h.urls[keyword])
}

// Keywords returns the registered keywords in order.
func (h *KeywordHits) Keywords() []string {
	return slices.Clone(h.keywords)
}

// Found returns the keywords with at least one URL, in keyword order.
func (h *KeywordHits) Found() []KeywordHit {
	found := make([]KeywordHit, 0, len(h.keywords))
	for _, kw := range h.keywords {
		if len(h.urls[kw]) == 0 {
			continue
		}
		found = append(found, KeywordHit{Keyword: kw, URLs: slices.Clone(h.urls[kw])})
	}
	return found
}

// Empty reports whether no keyword has been found anywhere.
func (h *KeywordHits) Empty() bool {
	for _, kw := range h.keywords {
		if len(h.urls[kw]) > 0 {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the hits as an ordered list, including keywords with
// no URLs.
func (h *KeywordHits) MarshalJSON() ([]byte, error) {
	all := make([]KeywordHit, 0, len(h.keywords))
	for _, kw := range h.keywords {
		all = append(all, KeywordHit{Keyword: kw, URLs: slices.Clone(h.urls[kw])})
	}
	return json.Marshal(all)
}
