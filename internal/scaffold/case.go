package scaffold

import (
	"strings"
	"unicode"
)

// splitWords breaks an identifier into lowercase words. Accepts kebab-case,
// snake_case, camelCase, PascalCase, and space-separated input.
func splitWords(s string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return words
}

// ToPascal converts "room-management" to "RoomManagement".
func ToPascal(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(strings.ToUpper(w[:1]) + w[1:])
	}
	return b.String()
}

// ToCamel converts "room-management" to "roomManagement".
func ToCamel(s string) string {
	p := ToPascal(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// ToKebab converts "RoomManagement" to "room-management".
func ToKebab(s string) string {
	return strings.Join(splitWords(s), "-")
}

// ToSnake converts "RoomManagement" to "room_management".
func ToSnake(s string) string {
	return strings.Join(splitWords(s), "_")
}
