package extractors

import "strings"

// Rule maps subjects matching When to Then.
type Rule[S any, R any] struct {
	Name string
	When func(S) bool
	Then R
}

// DecisionTable is an ordered rule list; the first matching rule decides.
type DecisionTable[S any, R any] []Rule[S, R]

// Decide returns the result of the first rule matching subject, or otherwise.
func (t DecisionTable[S, R]) Decide(subject S, otherwise R) R {
	for _, rule := range t {
		if rule.When(subject) {
			return rule.Then
		}
	}
	return otherwise
}

// assetContext is what asset-type tables look at: the instrument name and
// the category or page text it was found under, both uppercased.
type assetContext struct {
	Name     string
	Category string
}

func newAssetContext(name, category string) assetContext {
	return assetContext{Name: strings.ToUpper(name), Category: strings.ToUpper(category)}
}

func nameHas(keywords ...string) func(assetContext) bool {
	return func(c assetContext) bool { return containsAny(c.Name, keywords...) }
}

func categoryHas(keywords ...string) func(assetContext) bool {
	return func(c assetContext) bool { return containsAny(c.Category, keywords...) }
}

func eitherHas(keywords ...string) func(assetContext) bool {
	return func(c assetContext) bool {
		return containsAny(c.Name, keywords...) || containsAny(c.Category, keywords...)
	}
}

// pageKind labels pages that must not be parsed for holdings.
type pageKind string

const (
	holdingsPage    pageKind = ""
	summaryPage     pageKind = "summary"
	transactionPage pageKind = "transaction"
	notesPage       pageKind = "notes"
)
