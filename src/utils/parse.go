package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyNoise = regexp.MustCompile(`[₹$,\s]`)

	slashDatePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	wordDatePattern  = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)
	isoDatePattern   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

	// NumericTokenPattern matches a whitespace-delimited amount such as
	// "9,502.181" or "10000000".
	NumericTokenPattern = regexp.MustCompile(`^[\d,]+\.?\d*$`)
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// CleanCurrencyValue converts strings like "₹1,23,456.50" to a float.
// Empty, "-" or unparseable input yields 0.
func CleanCurrencyValue(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "-" {
		return 0
	}
	cleaned := currencyNoise.ReplaceAllString(trimmed, "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// CleanCellValue is CleanCurrencyValue for an optional table cell.
func CleanCellValue(cell *string) float64 {
	if cell == nil {
		return 0
	}
	return CleanCurrencyValue(*cell)
}

// MonthNumber returns the two digit month for a month name, matched on its
// first three letters case-insensitively.
func MonthNumber(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if len(lower) < 3 {
		return "", false
	}
	month, ok := monthNumbers[lower[:3]]
	return month, ok
}

// ParseDate normalizes DD/MM/YYYY, "D Month YYYY" and YYYY-MM-DD to
// YYYY-MM-DD. Anything else comes back unchanged, so callers cannot assume
// an ISO result.
func ParseDate(text string) string {
	if text == "" {
		return ""
	}
	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	}
	if m := wordDatePattern.FindStringSubmatch(text); m != nil {
		if month, ok := MonthNumber(m[2]); ok {
			return fmt.Sprintf("%s-%s-%s", m[3], month, padDay(m[1]))
		}
	}
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}
	return text
}

// FindWordDate returns the first "D Mon YYYY" date in text as YYYY-MM-DD,
// or "" when there is none.
func FindWordDate(text string) string {
	for _, m := range wordDatePattern.FindAllStringSubmatch(text, -1) {
		if month, ok := MonthNumber(m[2]); ok {
			return fmt.Sprintf("%s-%s-%s", m[3], month, padDay(m[1]))
		}
	}
	return ""
}

// IsNumericString reports whether s looks like an amount of at least three
// digits once separators, rupee signs and dashes are removed.
func IsNumericString(s string) bool {
	cleaned := strings.NewReplacer(",", "", " ", "", "\t", "", "₹", "", "-", "").Replace(s)
	if len(cleaned) <= 2 {
		return false
	}
	digits := strings.ReplaceAll(cleaned, ".", "")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func padDay(day string) string {
	if len(day) == 1 {
		return "0" + day
	}
	return day
}

var shortSlashDatePattern = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{2}|\d{4})$`)

// ParseShortDate normalizes D/M/YY style dates (also with - or . separators)
// to YYYY-MM-DD, assuming the 2000s for two digit years. Anything else goes
// through ParseDate.
func ParseShortDate(text string) string {
	trimmed := strings.TrimSpace(text)
	m := shortSlashDatePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ParseDate(trimmed)
	}
	year := m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	return fmt.Sprintf("%s-%s-%s", year, padDay(m[2]), padDay(m[1]))
}
