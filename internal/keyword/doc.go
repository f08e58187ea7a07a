// Package keyword normalizes a keyword list and finds which keywords occur
// in a page's text.
//
// Matching is a plain case-insensitive substring test on the whole text.
// It works the same for Latin and Devanagari phrases, and a keyword inside
// a longer word counts as a match.
package keyword
