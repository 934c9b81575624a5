package validation

import "strings"

// FieldError - ошибка валидации конкретного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors накапливает ошибки по всем полям запроса, чтобы клиент
// получил полный список за один ответ.
type Errors []FieldError

// Add добавляет ошибку поля, nil игнорируется.
func (e *Errors) Add(field string, err error) {
	if err == nil {
		return
	}
	*e = append(*e, FieldError{Field: field, Message: err.Error()})
}

// AddMessage добавляет ошибку поля с готовым текстом.
func (e *Errors) AddMessage(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Any сообщает, есть ли накопленные ошибки.
func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "валидация не пройдена: " + strings.Join(parts, "; ")
}
