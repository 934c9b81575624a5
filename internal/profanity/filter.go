package profanity

import (
	goaway "github.com/TwiN/go-away"
)

// Filter цензурирует нецензурную лексику в пользовательских текстах.
type Filter struct {
	detector *goaway.ProfanityDetector
}

// New создаёт фильтр с устойчивостью к leet-замене символов.
func New() *Filter {
	return &Filter{
		detector: goaway.NewProfanityDetector().
			WithSanitizeLeetSpeak(true).
			WithSanitizeSpecialCharacters(true).
			WithSanitizeAccents(false),
	}
}

// Censor заменяет найденные слова звёздочками, сохраняя длину текста.
func (f *Filter) Censor(text string) string {
	return f.detector.Censor(text)
}

// IsProfane сообщает, содержит ли текст нецензурную лексику.
func (f *Filter) IsProfane(text string) bool {
	return f.detector.IsProfane(text)
}
