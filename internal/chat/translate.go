package chat

import (
	"strings"
)

const legacyCodes = "0123456789AaBbCcDdEeFfKkLlMmNnOoRrXx"

// ValidHex reports whether s is a "#rrggbb" color.
func ValidHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(rune(s[i])) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Translate rewrites user markup into legacy escape sequences. "&c" becomes
// "§c"; with hex enabled "&#a1b2c3" becomes "§x§a§1§b§2§c§3".
func Translate(text string, hex bool) string {
	if !strings.ContainsRune(text, AltEscapeChar) {
		return text
	}
	src := []rune(text)
	var b strings.Builder
	b.Grow(len(text) + 16)
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != AltEscapeChar || i+1 >= len(src) {
			b.WriteRune(c)
			continue
		}
		if hex && src[i+1] == '#' && i+7 < len(src) && ValidHex(string(src[i+1:i+8])) {
			b.WriteRune(EscapeChar)
			b.WriteRune('x')
			for _, d := range src[i+2 : i+8] {
				b.WriteRune(EscapeChar)
				b.WriteString(strings.ToLower(string(d)))
			}
			i += 7
			continue
		}
		next := src[i+1]
		if strings.ContainsRune(legacyCodes, next) {
			b.WriteRune(EscapeChar)
			b.WriteString(strings.ToLower(string(next)))
			i++
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
