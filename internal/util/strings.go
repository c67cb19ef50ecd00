package util

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ToValidUTF8 ensures a string is valid UTF-8.
// If the string contains invalid UTF-8 sequences, it is decoded as
// Latin-1 (ISO-8859-1), the usual encoding of older CSV exports. This
// keeps names like "Añasco" or "Coeur d'Alène" readable.
func ToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err == nil {
		return decoded
	}

	// Latin-1 maps 1:1 to Unicode codepoints 0-255
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}

// ToValidUTF8Slice applies ToValidUTF8 to every element in place.
func ToValidUTF8Slice(ss []string) []string {
	for i, s := range ss {
		ss[i] = ToValidUTF8(s)
	}
	return ss
}
