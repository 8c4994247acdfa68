package inbox

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AvatarPalette is the number of avatar colors
const AvatarPalette = 5

const bugGlyph = "🐛"

// Initial returns the avatar glyph for a customer name
func Initial(name string) string {
	if name == "Booking API problems" {
		return bugGlyph
	}
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// AvatarColorIndex picks a stable palette slot for name
func AvatarColorIndex(name string) int {
	return len(name) % AvatarPalette
}
