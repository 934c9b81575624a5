package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Константы валидации
const (
	MinNameLength       = 2
	MaxNameLength       = 50
	MinCityLength       = 2
	MaxCityLength       = 100
	MinStreetLength     = 2
	MaxStreetLength     = 200
	MinBuildingLength   = 1
	MaxBuildingLength   = 50
	MaxApartmentLength  = 20
	MinPersonNameLength = 2
	MaxPersonNameLength = 100
	MinReviewTextLength = 10
	MaxReviewTextLength = 5000
	MinCommentLength    = 1
	MaxCommentLength    = 1000
	MaxSearchQueryLength = 100
	MinRating           = 1
	MaxRating           = 5
	MinRooms            = 1
	MaxRooms            = 8
	MinFloor            = -999
	MaxFloor            = 999
	MinYear             = 1900
)

// Кириллические диапазоны, включая расширенные и исторические блоки.
// Пользователи вводят адреса и имена на русском и казахском языках.
const cyrillic = `\x{0400}-\x{04FF}\x{0500}-\x{052F}\x{2DE0}-\x{2DFF}\x{A640}-\x{A69F}\x{1C80}-\x{1C8F}`

var (
	nameRegex     = regexp.MustCompile(`^[a-zA-Z` + cyrillic + `][a-zA-Z` + cyrillic + `\s'-]*$`)
	cityRegex     = regexp.MustCompile(`^[a-zA-Z` + cyrillic + `0-9\s.,'()-]+$`)
	buildingRegex = regexp.MustCompile(`^[a-zA-Z` + cyrillic + `0-9\s/\\-]+$`)
	lastFourRegex = regexp.MustCompile(`^[0-9]{4}$`)
	objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	// Базовая проверка формата
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidatePersonName проверяет имя или фамилию пользователя.
func ValidatePersonName(fieldName, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s обязательно", fieldName)
	}
	if err := ValidateLength(fieldName, value, MinNameLength, MaxNameLength); err != nil {
		return err
	}
	if !nameRegex.MatchString(value) {
		return fmt.Errorf("%s содержит недопустимые символы", fieldName)
	}
	return nil
}

// ValidateFullName проверяет ФИО (например, арендатора или арендодателя).
func ValidateFullName(fieldName, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s обязательно", fieldName)
	}
	if err := ValidateLength(fieldName, value, MinPersonNameLength, MaxPersonNameLength); err != nil {
		return err
	}
	if !nameRegex.MatchString(value) {
		return fmt.Errorf("%s содержит недопустимые символы", fieldName)
	}
	return nil
}

// ValidateCity проверяет название города.
func ValidateCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return fmt.Errorf("город обязателен")
	}
	if err := ValidateLength("город", city, MinCityLength, MaxCityLength); err != nil {
		return err
	}
	if !cityRegex.MatchString(city) {
		return fmt.Errorf("город содержит недопустимые символы")
	}
	return nil
}

// ValidateStreet проверяет название улицы.
func ValidateStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return fmt.Errorf("улица обязательна")
	}
	if err := ValidateLength("улица", street, MinStreetLength, MaxStreetLength); err != nil {
		return err
	}
	if !cityRegex.MatchString(street) {
		return fmt.Errorf("улица содержит недопустимые символы")
	}
	return nil
}

// ValidateBuilding проверяет номер дома.
func ValidateBuilding(building string) error {
	building = strings.TrimSpace(building)
	if building == "" {
		return fmt.Errorf("номер дома обязателен")
	}
	if err := ValidateLength("номер дома", building, MinBuildingLength, MaxBuildingLength); err != nil {
		return err
	}
	if !buildingRegex.MatchString(building) {
		return fmt.Errorf("номер дома содержит недопустимые символы")
	}
	return nil
}

// ValidateApartment проверяет необязательный номер квартиры.
func ValidateApartment(apartment string) error {
	apartment = strings.TrimSpace(apartment)
	if apartment == "" {
		return nil
	}
	if err := ValidateLength("номер квартиры", apartment, 0, MaxApartmentLength); err != nil {
		return err
	}
	if !buildingRegex.MatchString(apartment) {
		return fmt.Errorf("номер квартиры содержит недопустимые символы")
	}
	return nil
}

// ValidateRating проверяет оценку по шкале 1-5.
func ValidateRating(fieldName string, rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%s должна быть от %d до %d", fieldName, MinRating, MaxRating)
	}
	return nil
}

// ValidateOptionalRating проверяет необязательную оценку.
func ValidateOptionalRating(fieldName string, rating *int) error {
	if rating == nil {
		return nil
	}
	return ValidateRating(fieldName, *rating)
}

// ValidateReviewText проверяет текст отзыва.
func ValidateReviewText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("текст отзыва обязателен")
	}
	return ValidateLength("текст отзыва", text, MinReviewTextLength, MaxReviewTextLength)
}

// ValidateCommentText проверяет текст комментария.
func ValidateCommentText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("текст комментария не может быть пустым")
	}
	return ValidateLength("текст комментария", text, MinCommentLength, MaxCommentLength)
}

// ValidateLastFour проверяет обязательные последние четыре цифры
// документа или телефона.
func ValidateLastFour(fieldName, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s обязательны", fieldName)
	}
	if !lastFourRegex.MatchString(value) {
		return fmt.Errorf("%s должны быть ровно четырьмя цифрами", fieldName)
	}
	return nil
}

// ValidateOptionalLastFour проверяет необязательный фрагмент из четырёх цифр,
// например в поисковых фильтрах.
func ValidateOptionalLastFour(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return ValidateLastFour(fieldName, value)
}

// ValidateRooms проверяет необязательное число комнат.
func ValidateRooms(rooms int) error {
	if rooms == 0 {
		return nil
	}
	if rooms < MinRooms || rooms > MaxRooms {
		return fmt.Errorf("число комнат должно быть от %d до %d", MinRooms, MaxRooms)
	}
	return nil
}

// ValidateFloor проверяет необязательный этаж; отрицательные значения
// допустимы для подвальных и цокольных этажей.
func ValidateFloor(floor *int) error {
	if floor == nil {
		return nil
	}
	if *floor < MinFloor || *floor > MaxFloor {
		return fmt.Errorf("этаж должен быть от %d до %d", MinFloor, MaxFloor)
	}
	return nil
}

// ValidateMonth проверяет номер месяца.
func ValidateMonth(fieldName string, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%s должен быть от 1 до 12", fieldName)
	}
	return nil
}

// ValidateYear проверяет год: не раньше 1900 и не позже следующего года.
func ValidateYear(fieldName string, year int) error {
	if year < MinYear || year > time.Now().Year()+1 {
		return fmt.Errorf("%s должен быть от %d до %d", fieldName, MinYear, time.Now().Year()+1)
	}
	return nil
}

// ValidateSearchQuery проверяет строку поиска.
func ValidateSearchQuery(q string) error {
	return ValidateLength("строка поиска", strings.TrimSpace(q), 0, MaxSearchQueryLength)
}

// ValidObjectID проверяет, что строка выглядит как шестнадцатеричный ObjectID.
func ValidObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}
