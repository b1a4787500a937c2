package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/family-budget-backend/internal/models"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		period string
		want   time.Time
	}{
		{"2w", now.AddDate(0, 0, -14)},
		{"", now.AddDate(0, -1, 0)},
		{"1m", now.AddDate(0, -1, 0)},
		{"3m", now.AddDate(0, -3, 0)},
		{"6m", now.AddDate(0, -6, 0)},
		{"9m", now.AddDate(0, -9, 0)},
		{"1y", now.AddDate(-1, 0, 0)},
	}

	for _, tc := range cases {
		got, err := periodStart(tc.period, now)
		assert.NoError(t, err, "период %q", tc.period)
		assert.Equal(t, tc.want, got, "период %q", tc.period)
	}
}

func TestPeriodStart_Invalid(t *testing.T) {
	now := time.Now()
	for _, period := range []string{"1d", "5m", "всё"} {
		_, err := periodStart(period, now)
		assert.Error(t, err, "период %q", period)
	}
}

func TestBuildBalanceHistory(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
	}

	transactions := []models.Transaction{
		{Type: models.TransactionTypeIncome, Amount: 1000, Date: day(3)},
		{Type: models.TransactionTypeExpense, Amount: 250, Date: day(3)},
		{Type: models.TransactionTypeExpense, Amount: 400, Date: day(1)},
		{Type: models.TransactionTypeIncome, Amount: 90.50, Date: day(7)},
	}

	points := buildBalanceHistory(transactions)

	assert.Len(t, points, 3)
	assert.Equal(t, "2026-05-01", points[0].Date)
	assert.Equal(t, -400.0, points[0].Value)
	assert.Equal(t, "2026-05-03", points[1].Date)
	assert.Equal(t, 750.0, points[1].Value)
	assert.Equal(t, "2026-05-07", points[2].Date)
	assert.Equal(t, 90.50, points[2].Value)
}

func TestBuildBalanceHistory_Empty(t *testing.T) {
	points := buildBalanceHistory(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}
