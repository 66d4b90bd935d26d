// Package slug turns human readable names into URL path segments.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make derives a slug from name. The result is lower case, has accents
// removed, keeps letters and digits and joins every other run of characters
// with a single hyphen. The same name always yields the same slug.
func Make(name string) string {
	folded := cases.Lower(language.Und).String(name)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, folded)
	if err != nil {
		stripped = folded
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingDash := false
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
