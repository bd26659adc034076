// Package domain contains the core value types of the spvbuild tool.
package domain

import "strings"

// Signature is a filesystem-safe cache key derived from a backend
// dependency descriptor and a host toolchain channel. Two toolchain
// pairings share a cache entry iff their signatures are equal.
type Signature string

// characters replaced with '_' when deriving a signature. Both slash
// variants are included so the result is stable across platforms.
const replacedChars = `\/.:@=`

// characters removed outright. Replacing these with '_' would make the
// directory names unreadable for descriptors written in table form,
// e.g. `{ git = "...", rev = "..." }`.
const strippedChars = "{} \n\r\"'"

// ComputeSignature derives the cache key for a (descriptor, channel)
// pair. The derivation is pure: equal inputs produce byte-identical
// output on every platform. Distinct canonical inputs never collide
// because every forbidden character maps to '_' or disappears while the
// remaining characters pass through untouched.
func ComputeSignature(descriptor, channel string) Signature {
	return Signature(sanitize(descriptor + "+" + channel))
}

func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case strings.ContainsRune(replacedChars, r):
			b.WriteRune('_')
		case strings.ContainsRune(strippedChars, r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s Signature) String() string {
	return string(s)
}
