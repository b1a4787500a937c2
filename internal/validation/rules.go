package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/family-budget-backend/internal/models"
)

// FieldRule описывает ограничения одного поля формы.
type FieldRule struct {
	Required bool
	MinLen   int
	MaxLen   int
	Enum     []string
	Positive bool
	Pattern  string
}

// Form хранит набор правил, ключом служит имя поля.
type Form map[string]FieldRule

// Формы приложения. Лимиты совпадают с проверками на клиенте,
// чтобы сервер и форма отклоняли одни и те же значения.
var (
	TransactionForm = Form{
		"amount":   {Required: true, Positive: true},
		"type":     {Required: true, Enum: []string{models.TransactionTypeIncome, models.TransactionTypeExpense}},
		"category": {Required: true, MaxLen: MaxCategoryNameLength},
		"status":   {Required: true, Enum: []string{models.TransactionStatusPlanned, models.TransactionStatusCompleted}},
		"date":     {Required: true},
	}

	CategoryForm = Form{
		"name":  {Required: true, MinLen: 1, MaxLen: MaxCategoryNameLength},
		"type":  {Required: true, Enum: []string{models.CategoryTypeIncome, models.CategoryTypeExpense, models.CategoryTypeBoth}},
		"icon":  {MaxLen: MaxCategoryIconLength},
		"color": {Required: true, Pattern: `^#[0-9A-Fa-f]{6}$`},
	}

	ProposalForm = Form{
		"type":        {Required: true, Enum: []string{string(models.ProposalTypeSpending), string(models.ProposalTypeSavings)}},
		"amount":      {Required: true, Positive: true},
		"description": {Required: true, MinLen: MinProposalDescriptionLength, MaxLen: MaxProposalDescriptionLength},
	}

	SubscriptionForm = Form{
		"name":              {Required: true, MinLen: 1, MaxLen: MaxSubscriptionNameLength},
		"amount":            {Required: true, Positive: true},
		"frequency":         {Required: true, Enum: []string{models.SubscriptionFrequencyWeekly, models.SubscriptionFrequencyMonthly, models.SubscriptionFrequencyYearly}},
		"next_payment_date": {Required: true},
	}
)

// CheckField проверяет одно строковое значение по правилу формы.
// Неизвестное имя поля считается ошибкой программиста и возвращает ошибку.
func (f Form) CheckField(name, value string) error {
	rule, ok := f[name]
	if !ok {
		return fmt.Errorf("неизвестное поле %q", name)
	}

	value = strings.TrimSpace(value)

	if value == "" {
		if rule.Required {
			return fmt.Errorf("поле %s обязательно", name)
		}
		return nil
	}

	length := utf8.RuneCountInString(value)
	if rule.MinLen > 0 && length < rule.MinLen {
		return fmt.Errorf("поле %s должно быть не менее %d символов", name, rule.MinLen)
	}
	if rule.MaxLen > 0 && length > rule.MaxLen {
		return fmt.Errorf("поле %s должно быть не более %d символов", name, rule.MaxLen)
	}

	if len(rule.Enum) > 0 && !contains(rule.Enum, value) {
		return fmt.Errorf("поле %s должно быть одним из: %s", name, strings.Join(rule.Enum, ", "))
	}

	if rule.Positive {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("поле %s должно быть положительным числом", name)
		}
	}

	if rule.Pattern != "" {
		matched, err := regexp.MatchString(rule.Pattern, value)
		if err != nil || !matched {
			return fmt.Errorf("поле %s имеет недопустимый формат", name)
		}
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
