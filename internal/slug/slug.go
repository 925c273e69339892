// Package slug derives the identity keys used to route to detail views and to
// join filings against contributor rollups.
//
// A key is built by decomposing the name (NFKD), dropping combining marks,
// lowercasing, replacing every run of characters outside [a-z0-9] with a
// single hyphen and trimming hyphens from both ends. A name with nothing left
// maps to Unknown. Distinct names may share a key.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unknown is the key of a name with no usable characters.
const Unknown = "unknown"

// Make returns the key for name.
func Make(name string) string {
	folded := fold(name)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if isKeyRune(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return Unknown
	}
	return b.String()
}

// Title turns a key back into a readable label, used when no record carries
// the original name.
func Title(key string) string {
	return strings.ReplaceAll(key, "-", " ")
}

// Set builds a membership set of keys.
func Set(keys ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func isKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func fold(name string) string {
	// transform.Chain is stateful, so each call gets its own.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, name)
	if err != nil {
		out = name
	}
	return strings.ToLower(out)
}
