package checkout

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonDigit      = regexp.MustCompile(`\D`)
	nonPostalChar = regexp.MustCompile(`[^0-9\-]`)
)

// SanitizePhone keeps digits only.
func SanitizePhone(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// SanitizePostalCode keeps digits and hyphens.
func SanitizePostalCode(s string) string {
	return nonPostalChar.ReplaceAllString(s, "")
}

// SanitizeAddress drops every rune outside the address allow-list: Japanese
// punctuation, kana and common kanji, ASCII and full-width alphanumerics,
// hyphen, and half/full-width spaces.
func SanitizeAddress(s string) string {
	return strings.Map(func(r rune) rune {
		if addressRune(r) {
			return r
		}
		return -1
	}, s)
}

func addressRune(r rune) bool {
	switch {
	case r == '-', r == ' ':
		return true
	case r < unicode.MaxASCII:
		return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
	case 0x3000 <= r && r <= 0x303F: // CJK punctuation, ideographic space
		return true
	case 0x3040 <= r && r <= 0x30FF: // hiragana, katakana
		return true
	case 0x4E00 <= r && r <= 0x9FAF: // CJK unified ideographs
		return true
	case 0xFF10 <= r && r <= 0xFF19, // full-width digits
		0xFF21 <= r && r <= 0xFF3A, // full-width upper
		0xFF41 <= r && r <= 0xFF5A: // full-width lower
		return true
	}
	return false
}
