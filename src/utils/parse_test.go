package utils_test

import (
	"consolidator/src/utils"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCurrencyValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"₹1,234.50", 1234.50},
		{"$ 1,000", 1000},
		{"  12,34,567.89 ", 1234567.89},
		{"-", 0},
		{"", 0},
		{"   ", 0},
		{"N/A", 0},
		{"1.2.3", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-250.5", -250.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.CleanCurrencyValue(tt.input))
		})
	}

	assert.Zero(t, utils.CleanCellValue(nil))
	cell := "9,502.18"
	assert.Equal(t, 9502.18, utils.CleanCellValue(&cell))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"31/08/2025", "2025-08-31"},
		{"Report Date : 05/09/2025", "2025-09-05"},
		{"1 Aug 2025", "2025-08-01"},
		{"14 april 2025", "2025-04-14"},
		{"2025-08-31", "2025-08-31"},
		{"", ""},
		{"sometime soon", "sometime soon"},
		{"3 Foo 2025", "3 Foo 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.ParseDate(tt.input))
		})
	}
}

func TestFindWordDate(t *testing.T) {
	assert.Equal(t, "2025-08-31", utils.FindWordDate("Statement as on 31 Aug 2025 for client"))
	assert.Equal(t, "2025-08-01", utils.FindWordDate("Page 2 of 9 then 1 August 2025"))
	assert.Equal(t, "", utils.FindWordDate("no date here"))
}

func TestMonthNumber(t *testing.T) {
	month, ok := utils.MonthNumber("September")
	assert.True(t, ok)
	assert.Equal(t, "09", month)

	_, ok = utils.MonthNumber("Ju")
	assert.False(t, ok)
}

func TestIsNumericString(t *testing.T) {
	assert.True(t, utils.IsNumericString("1,23,456.00"))
	assert.True(t, utils.IsNumericString("₹ 10,000"))
	assert.False(t, utils.IsNumericString("12"))
	assert.False(t, utils.IsNumericString("ABC FUND"))
	assert.False(t, utils.IsNumericString("..."))
}

func TestNumericTokenPattern(t *testing.T) {
	assert.True(t, utils.NumericTokenPattern.MatchString("9,502.181"))
	assert.True(t, utils.NumericTokenPattern.MatchString("10000000"))
	assert.False(t, utils.NumericTokenPattern.MatchString("12.5%"))
	assert.False(t, utils.NumericTokenPattern.MatchString("31-Aug-25"))
}

func TestParseShortDate(t *testing.T) {
	assert.Equal(t, "2022-04-07", utils.ParseShortDate("7/04/22"))
	assert.Equal(t, "2024-05-07", utils.ParseShortDate(" 7-5-2024 "))
	assert.Equal(t, "2022-09-30", utils.ParseShortDate("30.09.22"))
	assert.Equal(t, "2025-08-31", utils.ParseShortDate("31/08/2025"))
	assert.Equal(t, "n/a", utils.ParseShortDate("n/a"))
}
