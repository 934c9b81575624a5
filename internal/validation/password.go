package validation

import (
	"fmt"
	"unicode"
)

// Границы длины пароля. Верхняя следует из ограничения bcrypt в 72 байта.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// ValidatePassword проверяет пароль: длина не менее восьми символов,
// обязательны заглавная и строчная буквы и цифра.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("пароль слишком длинный")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("пароль должен содержать хотя бы одну заглавную букву")
	case !hasLower:
		return fmt.Errorf("пароль должен содержать хотя бы одну строчную букву")
	case !hasDigit:
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}
	return nil
}
