package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials returns the upper-cased first letters of the first two words, or
// the first two letters of a single word.
func Initials(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return ""
	case 1:
		runes := []rune(words[0])
		if len(runes) > 2 {
			runes = runes[:2]
		}
		return strings.ToUpper(string(runes))
	}

	first, _ := utf8.DecodeRuneInString(words[0])
	second, _ := utf8.DecodeRuneInString(words[1])
	return string([]rune{unicode.ToUpper(first), unicode.ToUpper(second)})
}
