package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds OCR output into canonical form: NFKC (full-width digits and letters
// become ASCII), surrounding whitespace trimmed, and all whitespace removed from the
// numeric fields. The identity check digit is upper-cased.
func (c *Candidate) Normalize() {
	c.Name = cleanText(c.Name)
	c.Address = cleanText(c.Address)
	c.Identity = strings.ToUpper(cleanNumber(c.Identity))
	c.Phone = cleanNumber(c.Phone)
	c.Bankcard = cleanNumber(c.Bankcard)
}

func cleanText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func cleanNumber(s string) string {
	s = norm.NFKC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, s)
}
