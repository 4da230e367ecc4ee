// internal/textutil/normalize.go
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
)

// Normalize lowercases a string and strips every character outside [a-z0-9].
// Used for shop-name comparison. Total: any input, including empty, yields a
// valid (possibly empty) result.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeStrict is the canonical-place variant: NFKC compatibility fold,
// curly quotes mapped to straight quotes, zero-width characters stripped,
// whitespace collapsed, lowercased.
func NormalizeStrict(s string) string {
	s = norm.NFKC.String(s)
	s = quoteReplacer.Replace(s)
	s = strings.Map(dropZeroWidth, s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func dropZeroWidth(r rune) rune {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\ufeff':
		return -1
	}
	return r
}
