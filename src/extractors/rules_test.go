package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionTableFirstMatchWins(t *testing.T) {
	table := DecisionTable[int, string]{
		{Name: "big", Then: "big", When: func(n int) bool { return n > 100 }},
		{Name: "positive", Then: "positive", When: func(n int) bool { return n > 0 }},
	}

	assert.Equal(t, "big", table.Decide(500, "other"))
	assert.Equal(t, "positive", table.Decide(5, "other"))
	assert.Equal(t, "other", table.Decide(-1, "other"))
	assert.Equal(t, "none", DecisionTable[int, string]{}.Decide(1, "none"))
}

func TestIIFLAssetTypes(t *testing.T) {
	testCases := []struct {
		name     string
		category string
		expected string
	}{
		{"AIF CAT III", "UNLISTED EQUITY", "AIF"},
		{"NATIONAL STOCK EXCHANGE", "UNLISTED EQUITY", "Unlisted Equity"},
		{"ABAKKUS ASSET", "MANAGED ACCOUNTS EQUITY", "AIF"},
		{"Some Diversified Alpha Plan", "", "AIF"},
		{"Reliance Industries", "DIRECT EQUITY", "Direct Equity"},
		{"XYZ Bond 2030", "", "Debt/Bonds"},
		{"Gold", "", "Other"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, iiflAssetTypes.Decide(newAssetContext(tc.name, tc.category), "Other"))
		})
	}
}

func TestKotakAssetTypes(t *testing.T) {
	testCases := []struct {
		name     string
		category string
		expected string
	}{
		{"ASK Growth Fund Class A1", "MUTUAL FUNDS", "AIF"},
		{"HDFC Flexi Cap Fund", "", "Mutual Funds"},
		{"7.5% ABC NCD 2027", "", "Bonds"},
		{"Infosys Ltd", "", "Direct Equity"},
		{"Savings Account", "BANK ACCOUNTS", "Cash/Bank"},
		{"Gold Bars", "OTHER PRODUCTS", "Other"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, kotakAssetTypes.Decide(newAssetContext(tc.name, tc.category), "Other"))
		})
	}
}

func TestYesBankAssetTypes(t *testing.T) {
	assert.Equal(t, "Index Funds/ETFs", yesBankAssetTypes.Decide(yesBankFund{Category: "Equity- Index"}, "Mutual Funds"))
	assert.Equal(t, "Index Funds/ETFs", yesBankAssetTypes.Decide(yesBankFund{Category: "ETF"}, "Mutual Funds"))
	assert.Equal(t, "Equity Mutual Funds", yesBankAssetTypes.Decide(yesBankFund{Category: "Equity- Large Cap"}, "Mutual Funds"))
	assert.Equal(t, "Debt Mutual Funds", yesBankAssetTypes.Decide(yesBankFund{Category: "Debt- Liquid"}, "Mutual Funds"))
	assert.Equal(t, "Hybrid Mutual Funds", yesBankAssetTypes.Decide(yesBankFund{Category: "Hybrid- Balanced"}, "Mutual Funds"))
	// Categories are matched as printed.
	assert.Equal(t, "Mutual Funds", yesBankAssetTypes.Decide(yesBankFund{Category: "EQUITY"}, "Mutual Funds"))
}

func TestPageKinds(t *testing.T) {
	assert.Equal(t, summaryPage, yesBankPageKinds.Decide("Grand Total 1,00,000.00", holdingsPage))
	assert.Equal(t, holdingsPage, yesBankPageKinds.Decide("Category/Scheme\nGrand Total", holdingsPage))
	assert.Equal(t, transactionPage, iiflPageKinds.Decide("CORPORATE ACTION\nABAKKUS", holdingsPage))
	assert.Equal(t, holdingsPage, iiflPageKinds.Decide("HOLDING STATEMENT\nCORPORATE ACTION", holdingsPage))
	assert.Equal(t, summaryPage, iiflPageKinds.Decide("SUMMARY OF TOTAL PORTFOLIO", holdingsPage))
	assert.Equal(t, notesPage, kotakPageKinds.Decide("Returns are based on XIRR", holdingsPage))
	assert.Equal(t, transactionPage, kotakPageKinds.Decide("Activity Date", holdingsPage))
}
