// Package features derives every computed column of the product table from
// the cleaned base columns.
package features

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Tag is one sustainability attribute with the text patterns that signal
// it. The dictionary is a fixed enumeration: extracted tag lists are
// emitted in dictionary order, not text order.
type Tag struct {
	Name     string
	Patterns []string
}

// SustainabilityTags returns the tag dictionary in its canonical order.
func SustainabilityTags() []Tag {
	return []Tag{
		{Name: "bamboo", Patterns: []string{"bamboo", "bambu"}},
		{Name: "recycled", Patterns: []string{"recycled", "recyclable", "recycling"}},
		{Name: "biodegradable", Patterns: []string{"biodegradable", "biodegradeable", "bio-degradable"}},
		{Name: "compostable", Patterns: []string{"compostable", "home compostable"}},
		{Name: "organic", Patterns: []string{"organic"}},
		{Name: "natural", Patterns: []string{"natural", "all-natural"}},
		{Name: "reusable", Patterns: []string{"reusable", "re-use"}},
		{Name: "refillable", Patterns: []string{"refillable", "refill"}},
		{Name: "plastic_free", Patterns: []string{"plastic-free", "plastic free", "no plastic"}},
		{Name: "vegan", Patterns: []string{"vegan"}},
		{Name: "cruelty_free", Patterns: []string{"cruelty-free", "cruelty free", "not tested on animals"}},
		{Name: "zero_waste", Patterns: []string{"zero waste", "zero-waste"}},
		{Name: "eco_friendly", Patterns: []string{"eco-friendly", "eco friendly", "environmentally friendly"}},
		{Name: "sustainable", Patterns: []string{"sustainable", "sustainability"}},
		{Name: "plant_based", Patterns: []string{"plant-based", "plant based"}},
	}
}

// TagNames returns the tag names in dictionary order, for export headers.
func TagNames() []string {
	tags := SustainabilityTags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

// TagExtractor matches the tag dictionary against product text in a single
// Aho-Corasick pass.
type TagExtractor struct {
	tags    []Tag
	matcher *ahocorasick.Matcher
	tagIdx  []int // pattern position -> tag position
}

// NewTagExtractor compiles the tag dictionary.
func NewTagExtractor() *TagExtractor {
	e := &TagExtractor{tags: SustainabilityTags()}
	patterns := make([]string, 0, len(e.tags)*2)
	for ti, tag := range e.tags {
		for _, p := range tag.Patterns {
			patterns = append(patterns, normalizeTagText(p))
			e.tagIdx = append(e.tagIdx, ti)
		}
	}
	e.matcher = ahocorasick.NewStringMatcher(patterns)
	return e
}

// Extract returns the matched tags in dictionary order, duplicate-free.
func (e *TagExtractor) Extract(text string) []string {
	hits := e.matcher.Match([]byte(normalizeTagText(text)))
	if len(hits) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(hits))
	for _, h := range hits {
		if h < len(e.tagIdx) {
			seen[e.tagIdx[h]] = true
		}
	}
	out := make([]string, 0, len(seen))
	for ti, tag := range e.tags {
		if seen[ti] {
			out = append(out, tag.Name)
		}
	}
	return out
}

// normalizeTagText lowercases, strips punctuation to spaces, and collapses
// whitespace so patterns match across hyphenation variants.
func normalizeTagText(text string) string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
