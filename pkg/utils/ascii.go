package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiReplacer = strings.NewReplacer("đ", "d", "Đ", "D", "²", "2")

// ToASCII strips Vietnamese diacritics for outputs whose fonts or code pages
// only cover Latin-1 ("Khách lẻ" -> "Khach le").
func ToASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, asciiReplacer.Replace(s))
	if err != nil {
		return s
	}
	return out
}
