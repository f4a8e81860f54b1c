package transaction_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tallyhq/tally/internal/transaction"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNormalizeType(t *testing.T) {
	type testCase struct {
		name string
		raw  string
		want transaction.Type
	}

	tests := []testCase{
		{name: "Income", raw: "income", want: transaction.TypeIncome},
		{name: "Expense", raw: "expense", want: transaction.TypeExpense},
		{name: "Empty", raw: "", want: transaction.TypeExpense},
		{name: "Garbage", raw: "transfer", want: transaction.TypeExpense},
		{name: "CaseSensitive", raw: "Income", want: transaction.TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transaction.NormalizeType(tt.raw))
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	type testCase struct {
		name string
		raw  any
		want float64
	}

	tests := []testCase{
		{name: "Float", raw: 4.5, want: 4.5},
		{name: "Int", raw: 10, want: 10},
		{name: "NumericString", raw: "12.50", want: 12.5},
		{name: "NonNumericString", raw: "abc", want: 0},
		{name: "Missing", raw: nil, want: 0},
		{name: "NaN", raw: math.NaN(), want: 0},
		{name: "PosInf", raw: math.Inf(1), want: 0},
		{name: "NegInf", raw: math.Inf(-1), want: 0},
		{name: "Bool", raw: true, want: 0},
		{name: "NegativeKept", raw: -3.25, want: -3.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transaction.NormalizeAmount(tt.raw))
		})
	}
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "Coffee", transaction.NormalizeDescription("  Coffee  "))
	assert.Empty(t, transaction.NormalizeDescription("   "))

	long := strings.Repeat("x", 250)
	assert.Len(t, transaction.NormalizeDescription(long), 200)
}

func TestNormalizeNotes(t *testing.T) {
	assert.Equal(t, "some note", transaction.NormalizeNotes(" some note "))

	long := strings.Repeat("y", 400)
	assert.Len(t, transaction.NormalizeNotes(long), 300)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "food", transaction.NormalizeCategory("food"))
	assert.Equal(t, "other", transaction.NormalizeCategory(""))
	// Unrecognized values are stored as-is.
	assert.Equal(t, "crypto", transaction.NormalizeCategory("crypto"))
}

func TestNormalizeDate(t *testing.T) {
	now := fixedClock(time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC))

	type testCase struct {
		name string
		raw  string
		want string
	}

	tests := []testCase{
		{name: "CalendarDate", raw: "2024-01-15", want: "2024-01-15"},
		{name: "FullTimestamp", raw: "2024-01-15T22:30:00Z", want: "2024-01-15"},
		{name: "Invalid", raw: "not-a-date", want: "2024-03-10"},
		{name: "Empty", raw: "", want: "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transaction.NormalizeDate(tt.raw, now))
		})
	}
}
