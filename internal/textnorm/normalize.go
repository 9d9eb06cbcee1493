// Package textnorm prepares complaint text for the fallback model.
package textnorm

import "strings"

// Normalize lowercases text, strips everything that is not a lowercase
// ASCII letter or whitespace, collapses whitespace runs to single
// spaces, and trims the ends. It is pure, total, and idempotent.
//
// Only the model fallback path uses this form; the keyword tiers match
// against the raw lower-cased text so punctuated phrases still hit.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))

	lastSpace := true // collapses leading whitespace too
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		default:
			// digits, punctuation, symbols, non-ASCII: dropped
		}
	}

	return strings.TrimRight(b.String(), " ")
}
