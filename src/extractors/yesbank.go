package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"regexp"
	"strings"
)

// Yes Bank WMS layout. Each table is one fund category: row 0 holds the
// category, rows 1 and 2 hold the fund name and its amounts, either embedded
// in the first cell or split across cells of row 2.
const (
	yesBankFirstPage         = 5
	yesBankDefaultReportDate = "2025-08-31"
	yesBankCategoryRow       = 0
	yesBankNameRow           = 1
	yesBankAmountsRow        = 2
	yesBankAmountsMinCells   = 4
	yesBankInvestmentCol     = 1
	yesBankCurrentCol        = 3
	yesBankSummaryMaxLines   = 15
	yesBankSummaryMaxCommas  = 10
	yesBankThreshold         = 1000
)

var (
	yesBankAmount        = regexp.MustCompile(`\d+,\d+,\d+\.\d+`)
	yesBankAmountToken   = regexp.MustCompile(`^\d+,\d+,\d+\.\d+`)
	yesBankFinancialLine = regexp.MustCompile(`\d+,\d+,\d+\.\d+.*\d+\.\d+.*\d+,\d+,\d+\.\d+`)

	yesBankPageKeywords = []string{
		"FUND", "SCHEME", "PLAN", "EQUITY", "DEBT", "INDEX", "GROWTH", "DIVIDEND",
		"PRUDENTIAL", "FLEXICAP", "MULTICAP", "MIDCAP", "NIFTY",
	}
	yesBankFundKeywords = []string{"FUND", "SCHEME", "PLAN", "INDEX"}
)

type yesBankFund struct {
	Category string
	Name     string
}

// Category labels are matched as printed; fund names case-insensitively.
var yesBankAssetTypes = DecisionTable[yesBankFund, string]{
	{Name: "index", Then: "Index Funds/ETFs", When: func(f yesBankFund) bool {
		return strings.Contains(f.Category, "Index") || strings.Contains(strings.ToUpper(f.Name), "INDEX") ||
			strings.Contains(f.Category, "ETF")
	}},
	{Name: "equity", Then: "Equity Mutual Funds", When: func(f yesBankFund) bool { return strings.Contains(f.Category, "Equity") }},
	{Name: "debt", Then: "Debt Mutual Funds", When: func(f yesBankFund) bool { return strings.Contains(f.Category, "Debt") }},
	{Name: "hybrid", Then: "Hybrid Mutual Funds", When: func(f yesBankFund) bool { return strings.Contains(f.Category, "Hybrid") }},
}

var yesBankPageKinds = DecisionTable[string, pageKind]{
	{Name: "grand total only", Then: summaryPage, When: func(text string) bool {
		return strings.Contains(text, "Grand Total") && !strings.Contains(text, "Category/") &&
			len(strings.Split(text, "\n")) < yesBankSummaryMaxLines &&
			strings.Count(text, ",") < yesBankSummaryMaxCommas
	}},
}

// YesBankExtractor reads mutual fund holdings from the investment summary.
type YesBankExtractor struct {
	reportDate string
}

// NewYesBankExtractor uses reportDate as the valuation date of every holding;
// the statement itself does not print one in a parseable place.
func NewYesBankExtractor(reportDate string) *YesBankExtractor {
	if reportDate == "" {
		reportDate = yesBankDefaultReportDate
	}
	return &YesBankExtractor{reportDate: reportDate}
}

func (e *YesBankExtractor) Name() string {
	return utils.ManagerYesBank
}

func (e *YesBankExtractor) Extract(ctx context.Context, input Input) []models.Holding {
	logger := managerLogger(ctx, e.Name())

	return scanPages(ctx, e.Name(), input.Document, yesBankFirstPage, func(page document.Page) []models.Holding {
		text := page.Text()
		if !containsAny(strings.ToUpper(text), yesBankPageKeywords...) {
			return nil
		}
		if yesBankPageKinds.Decide(text, holdingsPage) != holdingsPage {
			return nil
		}
		pageLogger := logger.WithField("page", page.Number())
		pageLogger.Info("Processing page")

		var holdings []models.Holding
		for tableIdx, table := range page.Tables() {
			if len(table) < 2 || !yesBankHasFundNames(table) {
				continue
			}
			category := document.Cell(table[yesBankCategoryRow], 0)

			for _, fund := range yesBankFundsFromTable(table) {
				if !material(fund.investment, fund.current, yesBankThreshold) || fund.name == "" {
					continue
				}
				raw := map[string]any{"category": category, "table_index": tableIdx, "page": page.Number()}
				for k, v := range fund.raw {
					raw[k] = v
				}
				holding, ok := emit(pageLogger, models.HoldingSpec{
					ManagerName:     e.Name(),
					AssetType:       yesBankAssetTypes.Decide(yesBankFund{Category: category, Name: fund.name}, "Mutual Funds"),
					AssetName:       fund.name,
					InvestmentValue: fund.investment,
					MarketValue:     fund.current,
					ValueAsOfDate:   e.reportDate,
					RawData:         raw,
				})
				if ok {
					holdings = append(holdings, holding)
				}
			}
		}
		return holdings
	})
}

func yesBankHasFundNames(table document.Table) bool {
	for _, row := range table {
		if containsAny(strings.ToUpper(document.Cell(row, 0)), yesBankFundKeywords...) {
			return true
		}
	}
	return false
}

type yesBankCandidate struct {
	name       string
	investment float64
	current    float64
	raw        map[string]any
}

// yesBankFundsFromTable prefers funds whose amounts are embedded in the name
// cell of rows 1 and 2; otherwise row 1 names the fund and row 2 carries the
// amounts in separate cells.
func yesBankFundsFromTable(table document.Table) []yesBankCandidate {
	var funds []yesBankCandidate
	for _, rowIdx := range []int{yesBankNameRow, yesBankAmountsRow} {
		if rowIdx >= len(table) {
			continue
		}
		if fund, ok := yesBankEmbeddedFund(document.Cell(table[rowIdx], 0)); ok {
			funds = append(funds, fund)
		}
	}
	if len(funds) > 0 {
		return funds
	}

	var name string
	if len(table) > yesBankNameRow {
		var parts []string
		for _, line := range strings.Split(document.Cell(table[yesBankNameRow], 0), "\n") {
			if yesBankAmount.MatchString(line) {
				break
			}
			parts = append(parts, strings.TrimSpace(line))
		}
		name = strings.TrimSpace(strings.Join(parts, " "))
	}
	if len(table) <= yesBankAmountsRow || len(table[yesBankAmountsRow]) < yesBankAmountsMinCells {
		return nil
	}
	amounts := table[yesBankAmountsRow]
	investment := document.Cell(amounts, yesBankInvestmentCol)
	current := document.Cell(amounts, yesBankCurrentCol)
	return []yesBankCandidate{{
		name:       name,
		investment: utils.CleanCurrencyValue(investment),
		current:    utils.CleanCurrencyValue(current),
		raw:        map[string]any{"investment_str": investment, "current_value_str": current},
	}}
}

// yesBankEmbeddedFund parses a cell such as
// "ICICI Prudential\nFlexicap Fund 9,99,950.00 7.84 10,65,893.41": name lines
// up to the first financial line, then the first two amounts on it.
func yesBankEmbeddedFund(text string) (yesBankCandidate, bool) {
	if text == "" || !yesBankAmount.MatchString(text) {
		return yesBankCandidate{}, false
	}
	var nameParts []string
	financial := ""
	for _, line := range strings.Split(text, "\n") {
		if !yesBankFinancialLine.MatchString(line) {
			nameParts = append(nameParts, strings.TrimSpace(line))
			continue
		}
		financial = line
		for _, word := range strings.Fields(line) {
			if yesBankAmountToken.MatchString(word) {
				break
			}
			nameParts = append(nameParts, word)
		}
		break
	}
	if financial == "" {
		return yesBankCandidate{}, false
	}
	amounts := yesBankAmount.FindAllString(financial, -1)
	if len(amounts) < 2 {
		return yesBankCandidate{}, false
	}
	return yesBankCandidate{
		name:       strings.TrimSpace(strings.Join(nameParts, " ")),
		investment: utils.CleanCurrencyValue(amounts[0]),
		current:    utils.CleanCurrencyValue(amounts[1]),
		raw:        map[string]any{"raw_financial_data": financial},
	}, true
}
