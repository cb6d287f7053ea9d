package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Motilal Oswal prints two grid tables: direct equity (header has "ISIN")
// and AIF/PMS products (header has "Instrument"). Both headers sit on row 0.
const (
	motilalFirstPage = 2
	// Motilal amounts are exact statement values, so any positive market
	// value is accepted.
	motilalThreshold           = 0
	motilalSummaryTotals       = 3
	motilalEquityMinCells      = 10
	motilalEquitySectorCol     = 0
	motilalEquitySecurityCol   = 1
	motilalEquityISINCol       = 2
	motilalEquityCostCol       = 11
	motilalEquityMarketCol     = 13
	motilalAIFMinCells         = 8
	motilalAIFCategoryCol      = 0
	motilalAIFInstrumentCol    = 1
	motilalAIFAssetClassCol    = 3
	motilalAIFCostCol          = 5
	motilalAIFMarketCol        = 6
	motilalAIFXIRRCol          = 11
	motilalEquityAssetType     = "Direct Equity"
	motilalAIFAssetType        = "AIF"
	motilalEquityHeaderKeyword = "ISIN"
	motilalAIFHeaderKeyword    = "Instrument"
)

var (
	motilalEquityKeywords = []string{
		"DIRECT EQUITY", "EQUITY HOLDING", "ISIN", "SECTOR", "SECURITY",
		"MARKET VALUE", "INVESTMENT VALUE", "UNREALIZED",
	}
	motilalAIFKeywords = []string{
		"AIF", "ALTERNATIVE INVESTMENT", "INSTRUMENT", "ASSET CLASS",
		"PORTFOLIO MANAGEMENT", "FUND MANAGER", "XIRR",
	}
)

var motilalPageKinds = DecisionTable[string, pageKind]{
	{Name: "summary", Then: summaryPage, When: func(text string) bool {
		upper := strings.ToUpper(text)
		return strings.Contains(upper, "SUMMARY") && !strings.Contains(upper, "DETAILED") &&
			strings.Count(text, "Total") > motilalSummaryTotals
	}},
}

type MotilalOswalExtractor struct{}

func NewMotilalOswalExtractor() *MotilalOswalExtractor {
	return &MotilalOswalExtractor{}
}

func (e *MotilalOswalExtractor) Name() string {
	return utils.ManagerMotilalOswal
}

func (e *MotilalOswalExtractor) Extract(ctx context.Context, input Input) []models.Holding {
	logger := managerLogger(ctx, e.Name())
	reportDate := utils.FindWordDate(pageText(input.Document, 0))

	return scanPages(ctx, e.Name(), input.Document, motilalFirstPage, func(page document.Page) []models.Holding {
		text := page.Text()
		upper := strings.ToUpper(text)
		hasEquity := containsAny(upper, motilalEquityKeywords...)
		hasAIF := containsAny(upper, motilalAIFKeywords...)
		if !hasEquity && !hasAIF {
			return nil
		}
		if motilalPageKinds.Decide(text, holdingsPage) != holdingsPage {
			return nil
		}
		pageLogger := logger.WithField("page", page.Number())
		pageLogger.Info("Processing page")

		var holdings []models.Holding
		if hasEquity {
			holdings = append(holdings, e.directEquity(pageLogger, page, reportDate)...)
		}
		if hasAIF {
			holdings = append(holdings, e.aifHoldings(pageLogger, page, reportDate)...)
		}
		return holdings
	})
}

func (e *MotilalOswalExtractor) directEquity(logger *logrus.Entry, page document.Page, reportDate string) []models.Holding {
	var holdings []models.Holding
	for tableIdx, table := range page.Tables() {
		if len(table) < 2 || !rowContains(table[0], motilalEquityHeaderKeyword) {
			continue
		}
		for _, row := range table[1:] {
			if len(row) < motilalEquityMinCells {
				continue
			}
			security := document.Cell(row, motilalEquitySecurityCol)
			isin := document.Cell(row, motilalEquityISINCol)
			if security == "" || security == "-" || isin == "" || strings.Contains(security, "Total") {
				continue
			}
			cost := utils.CleanCellValue(cellAt(row, motilalEquityCostCol))
			market := utils.CleanCellValue(cellAt(row, motilalEquityMarketCol))
			if market <= motilalThreshold {
				continue
			}
			holding, ok := emit(logger, models.HoldingSpec{
				ManagerName:     e.Name(),
				AssetType:       motilalEquityAssetType,
				AssetName:       security,
				InvestmentValue: cost,
				MarketValue:     market,
				ValueAsOfDate:   reportDate,
				RawData: map[string]any{
					"sector":      document.Cell(row, motilalEquitySectorCol),
					"isin":        isin,
					"page":        page.Number(),
					"table_index": tableIdx,
					"section":     motilalEquityAssetType,
				},
			})
			if ok {
				holdings = append(holdings, holding)
			}
		}
	}
	return holdings
}

func (e *MotilalOswalExtractor) aifHoldings(logger *logrus.Entry, page document.Page, reportDate string) []models.Holding {
	var holdings []models.Holding
	for tableIdx, table := range page.Tables() {
		if len(table) < 2 || !rowContains(table[0], motilalAIFHeaderKeyword) {
			continue
		}
		for _, row := range table[1:] {
			if len(row) < motilalAIFMinCells {
				continue
			}
			category := document.Cell(row, motilalAIFCategoryCol)
			instrument := document.Cell(row, motilalAIFInstrumentCol)
			assetClass := document.Cell(row, motilalAIFAssetClassCol)
			if instrument == "" || instrument == "-" || assetClass == "" || strings.Contains(category, "Total") {
				continue
			}
			cost := utils.CleanCellValue(cellAt(row, motilalAIFCostCol))
			market := utils.CleanCellValue(cellAt(row, motilalAIFMarketCol))
			if market <= motilalThreshold {
				continue
			}
			holding, ok := emit(logger, models.HoldingSpec{
				ManagerName:     e.Name(),
				AssetType:       motilalAIFAssetType,
				AssetName:       instrument,
				InvestmentValue: cost,
				MarketValue:     market,
				ValueAsOfDate:   reportDate,
				RawData: map[string]any{
					"category":    category,
					"asset_class": assetClass,
					"xirr":        utils.CleanCellValue(cellAt(row, motilalAIFXIRRCol)),
					"page":        page.Number(),
					"table_index": tableIdx,
					"section":     motilalAIFAssetType,
				},
			})
			if ok {
				holdings = append(holdings, holding)
			}
		}
	}
	return holdings
}
