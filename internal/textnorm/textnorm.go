// Package textnorm normalizes and tokenizes free-form product and category
// text. Every function here is pure and deterministic: the same input always
// yields the same output, and nothing fails on empty input.
package textnorm

import "strings"

// NormalizeWhitespace collapses runs of whitespace to a single space and
// trims both ends. Empty input yields "".
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey lower-cases a whitespace-normalized string. Keys derived this
// way are the stable lookup identity for human-entered category names.
func NormalizeKey(s string) string {
	return strings.ToLower(NormalizeWhitespace(s))
}

// Tokenize splits text into lower-cased alphanumeric word tokens. Any run of
// non-alphanumeric characters acts as a separator; empty tokens are dropped.
// The result is an ordered sequence, typically de-duplicated by the caller.
func Tokenize(s string) []string {
	key := NormalizeKey(s)
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// Uniq de-duplicates tokens while preserving first-seen order. Downstream
// consumers only rely on membership and counts, never on order.
func Uniq(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// TokenSet builds a membership set from a token sequence.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
