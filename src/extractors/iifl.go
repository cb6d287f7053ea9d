package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"regexp"
	"strings"
)

// IIFL 360 One statements are free text: "ABAKKUS ASSET 9,502.181
// 10,000,000.00 16,077,020.96 ...", with the instrument name continuing on
// following lines.
const (
	iiflFirstPage       = 3
	iiflLookAheadLines  = 10
	iiflMinNumerics     = 3
	iiflLargeAmount     = 100000
	iiflCostPos         = 0
	iiflMarketPos       = 1
	iiflThreshold       = 1000
	iiflMaxNameLength   = 100
	iiflMinContinuation = 3
)

var (
	iiflPercentage = regexp.MustCompile(`[\d,]+\.?\d*\s*%`)
	iiflShortDate  = regexp.MustCompile(`^\d{2}-\w{3}-\d{2}$`)

	iiflPageKeywords = []string{
		"DETAILED HOLDING", "HOLDING STATEMENT", "MANAGED ACCOUNTS",
		"UNLISTED EQUITY", "INSTRUMENT NAME", "PORTFOLIO MANAGER",
		"HOLDING COST", "NET ASSET VALUE", "AIF",
		"ABAKKUS", "DIVERSIFIED", "ALPHA FUND", "NATIONAL STOCK EXCHANGE", "QUANTITY",
	}
	iiflCategoryKeywords   = []string{"MANAGED ACCOUNTS EQUITY", "UNLISTED EQUITY", "DIRECT EQUITY", "DEBT"}
	iiflInstrumentKeywords = []string{"ABAKKUS", "DIVERSIFIED", "NATIONAL STOCK EXCHANGE", "FUND"}
	iiflNameKeywords       = []string{"FUND", "MANAGER", "ALPHA", "CLASS", "AIF", "CATEGORY", "LIMITED", "PRIVATE"}
	iiflSectionKeywords    = []string{"TOTAL", "UNLISTED", "MANAGED", "GAIN/LOSS", "PRICE"}
)

var iiflPageKinds = DecisionTable[string, pageKind]{
	{Name: "portfolio summary", Then: summaryPage, When: func(text string) bool {
		return strings.Contains(text, "SUMMARY OF TOTAL PORTFOLIO") &&
			!strings.Contains(text, "INSTRUMENT NAME") && !strings.Contains(text, "DETAILED HOLDING")
	}},
	{Name: "transactions", Then: transactionPage, When: func(text string) bool {
		return containsAny(text, "TRANSACTION STATEMENT", "CORPORATE ACTION") &&
			!strings.Contains(text, "HOLDING STATEMENT")
	}},
}

// Classified on the instrument name and the section heading it sits under.
var iiflAssetTypes = DecisionTable[assetContext, string]{
	{Name: "aif", Then: "AIF", When: eitherHas("AIF")},
	{Name: "unlisted", Then: "Unlisted Equity", When: eitherHas("UNLISTED")},
	{Name: "managed accounts", Then: "AIF", When: func(c assetContext) bool {
		return strings.Contains(c.Category, "MANAGED ACCOUNTS") || strings.Contains(c.Name, "DIVERSIFIED ALPHA")
	}},
	{Name: "equity", Then: "Direct Equity", When: eitherHas("EQUITY")},
	{Name: "debt", Then: "Debt/Bonds", When: func(c assetContext) bool {
		return strings.Contains(c.Category, "DEBT") || strings.Contains(c.Name, "BOND")
	}},
}

type IIFLExtractor struct{}

func NewIIFLExtractor() *IIFLExtractor {
	return &IIFLExtractor{}
}

func (e *IIFLExtractor) Name() string {
	return utils.ManagerIIFL360One
}

func (e *IIFLExtractor) Extract(ctx context.Context, input Input) []models.Holding {
	logger := managerLogger(ctx, e.Name())
	reportDate := utils.FindWordDate(pageText(input.Document, 0))

	return scanPages(ctx, e.Name(), input.Document, iiflFirstPage, func(page document.Page) []models.Holding {
		text := page.Text()
		if !containsAny(strings.ToUpper(text), iiflPageKeywords...) {
			return nil
		}
		if iiflPageKinds.Decide(text, holdingsPage) != holdingsPage {
			return nil
		}
		pageLogger := logger.WithField("page", page.Number())
		pageLogger.Info("Processing page")

		var holdings []models.Holding
		lines := strings.Split(text, "\n")
		category := ""
		for i := range lines {
			line := strings.TrimSpace(lines[i])
			upper := strings.ToUpper(line)
			if containsAny(upper, iiflCategoryKeywords...) {
				category = line
				continue
			}
			if line == "" || !containsAny(upper, iiflInstrumentKeywords...) {
				continue
			}

			nameParts, numerics := iiflSplitTokens(line)
			if len(numerics) < iiflMinNumerics {
				continue
			}
			var large []float64
			for _, v := range numerics {
				if v > iiflLargeAmount {
					large = append(large, v)
				}
			}
			if len(large) < 2 {
				continue
			}
			cost, market := large[iiflCostPos], large[iiflMarketPos]
			name := strings.TrimSpace(strings.Join(nameParts, " ") + iiflContinuation(lines, i))
			if name == "" || !material(cost, market, iiflThreshold) {
				continue
			}
			quantity := 0.0
			if numerics[0] < iiflLargeAmount {
				quantity = numerics[0]
			}

			holding, ok := emit(pageLogger, models.HoldingSpec{
				ManagerName:     e.Name(),
				AssetType:       iiflAssetTypes.Decide(newAssetContext(name, category), "Other"),
				AssetName:       truncate(name, iiflMaxNameLength),
				InvestmentValue: cost,
				MarketValue:     market,
				ValueAsOfDate:   reportDate,
				RawData: map[string]any{
					"category":       category,
					"line_number":    i + 1,
					"quantity":       quantity,
					"page":           page.Number(),
					"numeric_values": numerics,
					"raw_line":       line,
				},
			})
			if ok {
				holdings = append(holdings, holding)
			}
		}
		return holdings
	})
}

// iiflSplitTokens separates a line into instrument name words and positive
// amounts. Percentages and dd-Mon-yy dates belong to neither.
func iiflSplitTokens(line string) ([]string, []float64) {
	var name []string
	var numerics []float64
	for _, part := range strings.Fields(line) {
		if utils.NumericTokenPattern.MatchString(part) {
			if value := utils.CleanCurrencyValue(part); value > 0 {
				numerics = append(numerics, value)
			}
			continue
		}
		if !strings.Contains(part, "%") && !iiflShortDate.MatchString(part) {
			name = append(name, part)
		}
	}
	return name, numerics
}

// iiflContinuation collects name lines following line i until a blank line
// or a new section starts.
func iiflContinuation(lines []string, i int) string {
	var b strings.Builder
	for j := i + 1; j < len(lines) && j < i+iiflLookAheadLines; j++ {
		next := strings.TrimSpace(lines[j])
		upper := strings.ToUpper(next)
		switch {
		case next != "" && containsAny(upper, iiflNameKeywords...):
			if !iiflPercentage.MatchString(next) && len(next) > iiflMinContinuation {
				b.WriteString(" " + next)
			}
		case next != "" && containsAny(upper, "BSE", "INDEX"):
			b.WriteString(" " + next)
		case next == "" || containsAny(upper, iiflSectionKeywords...):
			return b.String()
		}
	}
	return b.String()
}
