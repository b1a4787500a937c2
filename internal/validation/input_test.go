package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"ivan.petrov@mail.ru",
		"a+tag@sub.domain.org",
	}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) вернул ошибку: %v", email, err)
		}
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.com",
		"user@localhost",
		"user@",
		"@example.com",
	}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) должен вернуть ошибку", email)
		}
	}
}

func TestValidateFullName(t *testing.T) {
	if err := ValidateFullName("Иван Петров"); err != nil {
		t.Errorf("ожидалось валидное имя: %v", err)
	}
	if err := ValidateFullName("A"); err == nil {
		t.Error("имя из одного символа должно быть отклонено")
	}
	if err := ValidateFullName(strings.Repeat("а", 101)); err == nil {
		t.Error("слишком длинное имя должно быть отклонено")
	}
	if err := ValidateFullName("Иван <script>"); err == nil {
		t.Error("имя с недопустимыми символами должно быть отклонено")
	}
}

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		name    string
		amount  float64
		wantErr bool
	}{
		{"положительная", 150.50, false},
		{"нулевая", 0, true},
		{"отрицательная", -10, true},
		{"на пределе", MaxAmount, false},
		{"выше предела", MaxAmount + 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAmount(tc.amount)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateAmount(%v) = %v, ожидалась ошибка: %v", tc.amount, err, tc.wantErr)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	date, err := ValidateDate("дата", "2026-03-15")
	if err != nil {
		t.Fatalf("ожидалась валидная дата: %v", err)
	}
	if date.Year() != 2026 || date.Month() != 3 || date.Day() != 15 {
		t.Errorf("дата распарсена неверно: %v", date)
	}

	if _, err := ValidateDate("дата", ""); err == nil {
		t.Error("пустая дата должна быть отклонена")
	}
	if _, err := ValidateDate("дата", "15.03.2026"); err == nil {
		t.Error("дата в неверном формате должна быть отклонена")
	}
	if _, err := ValidateDate("дата", "2026-13-40"); err == nil {
		t.Error("несуществующая дата должна быть отклонена")
	}
}
