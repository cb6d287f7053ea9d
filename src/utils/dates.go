package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var periodPattern = regexp.MustCompile(`([A-Z]+)\s*-\s*(\d{4})`)

var fullMonthNumbers = map[string]string{
	"JANUARY": "01", "FEBRUARY": "02", "MARCH": "03", "APRIL": "04",
	"MAY": "05", "JUNE": "06", "JULY": "07", "AUGUST": "08",
	"SEPTEMBER": "09", "OCTOBER": "10", "NOVEMBER": "11", "DECEMBER": "12",
}

// LastDayOfMonth returns the statement closing day for a two digit month.
// February always closes on the 28th, matching how issuers label periods.
func LastDayOfMonth(month string) string {
	switch month {
	case "01", "03", "05", "07", "08", "10", "12":
		return "31"
	case "04", "06", "09", "11":
		return "30"
	default:
		return "28"
	}
}

// ParsePeriodEndDate turns a period label such as "AUGUST - 2025" into the
// last day of that month ("2025-08-31"). Unknown month names map to December.
func ParsePeriodEndDate(period string) string {
	if period == "" {
		return ""
	}
	m := periodPattern.FindStringSubmatch(strings.ToUpper(period))
	if m == nil {
		return ""
	}
	month, ok := fullMonthNumbers[m[1]]
	if !ok {
		month = "12"
	}
	return fmt.Sprintf("%s-%s-%s", m[2], month, LastDayOfMonth(month))
}

// ParseMonthFolder parses data folder names such as "August 2025".
func ParseMonthFolder(name string) (time.Time, error) {
	return time.Parse(MonthFolderLayout, strings.TrimSpace(name))
}
