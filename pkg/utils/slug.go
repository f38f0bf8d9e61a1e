package utils

import (
	"strings"
	"unicode"
)

// Slugify turns a listing title into a URL slug: lowercase, ASCII letters and
// digits kept, everything else collapsed into single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
