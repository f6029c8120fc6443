package text

import (
	"regexp"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdfdiff/model"
)

// whitespacePattern matches runs of the characters stripped before a
// whitespace-insensitive comparison. It is compiled once and never mutated.
var whitespacePattern = regexp.MustCompile(`[ \r\n\t]+`)

// RemoveWhitespace deletes every space, tab, carriage return and newline.
// Runs are removed entirely, not collapsed to a single space.
func RemoveWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, "")
}

// NormalizeUnicode returns the NFC form of s, so that precomposed and
// decomposed spellings of the same character compare equal.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// Normalizer applies the configured normalizations to extracted text.
// The zero value leaves text untouched.
type Normalizer struct {
	RemoveWhitespace bool
	Unicode          bool
}

// Apply normalizes s
func (n Normalizer) Apply(s string) string {
	if n.Unicode {
		s = NormalizeUnicode(s)
	}
	if n.RemoveWhitespace {
		s = RemoveWhitespace(s)
	}
	return s
}

// InRegion returns the fragments whose centre lies inside r, preserving
// content order.
func InRegion(fragments []Fragment, r model.Region) []Fragment {
	var out []Fragment
	for _, f := range fragments {
		center := model.Point{
			X: f.X + f.Width/2,
			Y: f.Y + f.Height()/2,
		}
		if r.Contains(center) {
			out = append(out, f)
		}
	}
	return out
}
