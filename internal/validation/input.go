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
	MinFullNameLength            = 2
	MaxFullNameLength            = 100
	MaxFamilyNameLength          = 100
	MaxCategoryNameLength        = 50
	MaxCategoryIconLength        = 2
	MinProposalDescriptionLength = 10
	MaxProposalDescriptionLength = 500
	MaxTransactionDescription    = 1000
	MaxSubscriptionNameLength    = 100
	MaxBankAccountNameLength     = 100
	MaxAmount                    = 99999999.99 // предел numeric(10,2)
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

	// Проверка на валидные символы в локальной части
	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	// Проверка на валидные символы в доменной части
	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateFullName проверяет имя пользователя.
func ValidateFullName(fullName string) error {
	if fullName == "" {
		return fmt.Errorf("имя обязательно")
	}

	fullName = strings.TrimSpace(fullName)

	if err := ValidateLength("имя", fullName, MinFullNameLength, MaxFullNameLength); err != nil {
		return err
	}

	fullNameRegex := regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9\s\-_.]+$`)
	if !fullNameRegex.MatchString(fullName) {
		return fmt.Errorf("имя содержит недопустимые символы")
	}

	return nil
}

// ValidateAmount проверяет денежную сумму.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("сумма должна быть больше нуля")
	}
	if amount > MaxAmount {
		return fmt.Errorf("сумма не может превышать %.2f", float64(MaxAmount))
	}
	return nil
}

// ValidateDate проверяет дату в формате YYYY-MM-DD и возвращает её.
func ValidateDate(fieldName, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, fmt.Errorf("%s обязательна", fieldName)
	}

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s должна быть в формате ГГГГ-ММ-ДД", fieldName)
	}
	return date, nil
}
