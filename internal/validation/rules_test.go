package validation

import "testing"

func TestFormCheckField(t *testing.T) {
	cases := []struct {
		name    string
		form    Form
		field   string
		value   string
		wantErr bool
	}{
		{"тип транзакции валиден", TransactionForm, "type", "income", false},
		{"тип транзакции вне enum", TransactionForm, "type", "transfer", true},
		{"сумма положительная", TransactionForm, "amount", "199.99", false},
		{"сумма нулевая", TransactionForm, "amount", "0", true},
		{"сумма не число", TransactionForm, "amount", "many", true},
		{"обязательное поле пустое", TransactionForm, "date", "", true},
		{"статус planned", TransactionForm, "status", "planned", false},

		{"цвет категории валиден", CategoryForm, "color", "#6b7280", false},
		{"цвет категории без решётки", CategoryForm, "color", "6b7280", true},
		{"иконка опциональна", CategoryForm, "icon", "", false},
		{"иконка слишком длинная", CategoryForm, "icon", "abc", true},

		{"тип предложения валиден", ProposalForm, "type", "savings", false},
		{"описание короткое", ProposalForm, "description", "мало", true},

		{"периодичность валидна", SubscriptionForm, "frequency", "monthly", false},
		{"периодичность вне enum", SubscriptionForm, "frequency", "daily", true},

		{"неизвестное поле", TransactionForm, "colour", "x", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.CheckField(tc.field, tc.value)
			if (err != nil) != tc.wantErr {
				t.Errorf("CheckField(%q, %q) = %v, ожидалась ошибка: %v", tc.field, tc.value, err, tc.wantErr)
			}
		})
	}
}
