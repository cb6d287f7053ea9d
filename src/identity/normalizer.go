// Package identity maps free-text asset names to canonical keys so the same
// investment reported by different managers can be matched.
package identity

import (
	"regexp"
	"strings"
)

var trancheDate = regexp.MustCompile(`(\d{1,2}[-/]\w{3}[-/]\d{2,4})`)

var askSeries = regexp.MustCompile(`(SERIES\s*\w+|CLASS\s*\w+)`)

// Family rules keep tranches of fund families that are known to be held in
// several series at once apart. They are checked in order; the first match
// decides the key.
type familyRule struct {
	name      string
	matches   func(key string) bool
	canonical func(key, dateSuffix string) string
}

func hasAll(key string, words ...string) bool {
	for _, w := range words {
		if !strings.Contains(key, w) {
			return false
		}
	}
	return true
}

func underscored(key, _ string) string {
	return strings.ReplaceAll(key, " ", "_")
}

var familyRules = []familyRule{
	{
		name:    "ask growth india",
		matches: func(k string) bool { return hasAll(k, "ASK", "GROWTH", "INDIA") },
		canonical: func(k, date string) string {
			series := ""
			if m := askSeries.FindStringSubmatch(k); m != nil {
				series = "_" + m[1]
			}
			return "ASK GROWTH INDIA" + series + date
		},
	},
	{
		name:      "altacura absolute return",
		matches:   func(k string) bool { return hasAll(k, "ALTACURA", "AI", "ABSOLUTE", "RETURN") },
		canonical: underscored,
	},
	{
		name: "white oak india equity",
		matches: func(k string) bool {
			return hasAll(k, "WHITE", "OAK", "INDIA") && (strings.Contains(k, "EQUITY") || strings.Contains(k, "VI"))
		},
		canonical: func(_, date string) string { return "WHITE OAK INDIA EQUITY" + date },
	},
	{
		name: "accuracap",
		matches: func(k string) bool {
			return strings.Contains(k, "ACCURACAP") && (strings.Contains(k, "ALPHA") || strings.Contains(k, "PRIME"))
		},
		canonical: func(_, date string) string { return "ACCURACAP ALPHA" + date },
	},
	{
		name:      "white space alpha",
		matches:   func(k string) bool { return hasAll(k, "WHITE", "SPACE", "ALPHA") },
		canonical: underscored,
	},
	{
		name: "motilal oswal products",
		matches: func(k string) bool {
			return strings.Contains(k, "MOTILAL OSWAL") &&
				(strings.Contains(k, "ALTERNATIVE") || strings.Contains(k, "FOUNDERS") || strings.Contains(k, "SELECT"))
		},
		canonical: func(k, _ string) string {
			switch {
			case strings.Contains(k, "SELECT") && strings.Contains(k, "OPP"):
				return "MOTILAL OSWAL SELECT OPPORTUNITIES"
			case strings.Contains(k, "FOUNDERS") || hasAll(k, "MOTILAL", "OSWL", "ANCHORS"):
				return "MOTILAL OSWAL FOUNDERS"
			default:
				return "MOTILAL OSWAL ALTERNATIVE"
			}
		},
	},
}

// Boilerplate removed by generic normalization, in order.
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`\(DEMAT\)`),
	regexp.MustCompile(`\(ERSTWHILE.*?\)`),
	regexp.MustCompile(`\bCLASS A1\b|\bCL A1\b|\bCLASS B1\b|\bCL B1\b|\bCL D4\b`),
	regexp.MustCompile(`\bDIRECT PLAN\b|\bREGULAR PLAN\b`),
	regexp.MustCompile(`\bGROWTH\b`),
	regexp.MustCompile(`\bLTD\b|\bLIMITED\b`),
	regexp.MustCompile(`\bLLP\b`),
	regexp.MustCompile(`\bFUND\b`),
	regexp.MustCompile(`\bAIF\b`),
	regexp.MustCompile(`\bEQUITY\b`),
	regexp.MustCompile(`\bVI\b`),
	regexp.MustCompile(`\bTRUST\b`),
	regexp.MustCompile(`\bINVESTMENT\b`),
	regexp.MustCompile(`\bALTERNATIVE\b`),
	regexp.MustCompile(`\bSERIES\b|\bSR\b`),
	regexp.MustCompile(`\bI\b|\bIV\b`),
	regexp.MustCompile(`\s*-\s*25-`),
	regexp.MustCompile(`\s*6W\s*12A`),
	regexp.MustCompile(`\s*OPT\s*1`),
}

var separators = regexp.MustCompile(`[-\s]+`)

// Normalize returns the canonical key of an asset name. Names of known
// multi-tranche families keep their series or date; everything else is
// uppercased, stripped of boilerplate words and whitespace-collapsed. The
// mapping is lossy: distinct funds with near identical names can collide.
func Normalize(assetName string) string {
	key := strings.ToUpper(assetName)

	dateSuffix := ""
	if m := trancheDate.FindStringSubmatch(key); m != nil {
		dateSuffix = "_" + m[1]
	}
	for _, rule := range familyRules {
		if rule.matches(key) {
			return rule.canonical(key, dateSuffix)
		}
	}

	for _, pattern := range boilerplate {
		key = pattern.ReplaceAllString(key, "")
	}
	key = separators.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}
