// ABOUTME: Vendor-name extraction from free text for the stateless modes.
// ABOUTME: Heuristic substring matching over a fixed vocabulary, swappable by design.

package router

import "strings"

// VendorExtractor derives vendor names from free text. The heuristic is
// domain-specific, so it stays behind an interface callers can swap.
type VendorExtractor interface {
	// Match returns the vendors recognized in text, in vocabulary order.
	Match(text string) []string

	// Pair returns the vendors for a comparison request: the matches when at
	// least two were recognized, otherwise a fixed default pair.
	Pair(text string) []string
}

// DefaultVocabulary lists the vendors the backend catalog indexes.
var DefaultVocabulary = []string{"Dell", "IBM", "Cisco", "Juniper", "Fortinet", "EUC"}

// DefaultPair is used when free text names fewer than two known vendors.
var DefaultPair = []string{"Cisco", "Fortinet"}

// VocabularyExtractor matches vendor names by case-insensitive substring
// search against a fixed vocabulary.
type VocabularyExtractor struct {
	Vocabulary []string
	Fallback   []string
}

// NewVocabularyExtractor returns an extractor over the default vocabulary
// and fallback pair.
func NewVocabularyExtractor() *VocabularyExtractor {
	return &VocabularyExtractor{
		Vocabulary: DefaultVocabulary,
		Fallback:   DefaultPair,
	}
}

// Match implements VendorExtractor.
func (e *VocabularyExtractor) Match(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, vendor := range e.Vocabulary {
		if strings.Contains(lower, strings.ToLower(vendor)) {
			found = append(found, vendor)
		}
	}
	return found
}

// Pair implements VendorExtractor.
func (e *VocabularyExtractor) Pair(text string) []string {
	if found := e.Match(text); len(found) >= 2 {
		return found
	}
	pair := make([]string, len(e.Fallback))
	copy(pair, e.Fallback)
	return pair
}

// StaticVendors is an extractor that always answers with a fixed list,
// used when the user picked vendors explicitly instead of typing them.
type StaticVendors []string

// Match implements VendorExtractor.
func (s StaticVendors) Match(string) []string { return []string(s) }

// Pair implements VendorExtractor.
func (s StaticVendors) Pair(string) []string { return []string(s) }
