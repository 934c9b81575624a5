package validation

import (
	"strings"
	"unicode"
)

// Sanitize подготавливает пользовательский ввод к сохранению:
// вырезает угловые скобки и управляющие символы, схлопывает
// повторные пробелы и обрезает крайние.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch {
		case r == '<' || r == '>':
			continue
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

// Truncate обрезает строку до max рун.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// NormalizeEmail приводит email к каноническому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
