package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// IND Money statement layout. Amounts are in USD.
const (
	indMoneyHeaderSearchRows   = 3
	indMoneyMinTableRows       = 3
	indMoneyMinRowCells        = 5
	indMoneySymbolCol          = 0
	indMoneyDescriptionCol     = 1
	indMoneyMarketMinCol       = 3
	indMoneyMarketPreferredCol = 4
	indMoneyCostMinCol         = 6
	indMoneyCostPreferredCol   = 7
	indMoneyMinCellUSD         = 100
	indMoneyDescriptionLength  = 30
	indMoneyAssetType          = "US Stocks"
	indMoneyAuxHeader          = "Stock Symbol"
	indMoneyAuxDisclaimer      = "Disclaimer:-"
)

var (
	indMoneyPeriodPattern   = regexp.MustCompile(`Monthly Statement Period:\s*([A-Z]+\s*-\s*\d{4})`)
	indMoneyHoldingKeywords = []string{
		"HOLDINGS", "SYMBOL", "MARKET PRICE", "COST BASIS", "QUANTITY",
		"PORTFOLIO", "STOCK", "SHARES", "USD", "UNREALIZED",
	}
)

// RateProvider converts between currencies for a reporting period.
type RateProvider interface {
	GetRate(ctx context.Context, from, to, period string) float64
}

// INDMoneyExtractor reads US stock statements and converts them to INR.
// The optional auxiliary spreadsheet back-fills investment dates by symbol.
type INDMoneyExtractor struct {
	rates RateProvider
}

func NewINDMoneyExtractor(rates RateProvider) *INDMoneyExtractor {
	return &INDMoneyExtractor{rates: rates}
}

func (e *INDMoneyExtractor) Name() string {
	return utils.ManagerINDMoney
}

func (e *INDMoneyExtractor) Extract(ctx context.Context, input Input) []models.Holding {
	logger := managerLogger(ctx, e.Name())

	holdingDates := map[string]string{}
	if input.AuxiliaryPath != "" {
		dates, err := ReadHoldingDates(input.AuxiliaryPath)
		if err != nil {
			logger.WithError(err).Warn("Investment dates unavailable")
		} else {
			holdingDates = dates
		}
	}

	reportDate := ""
	if m := indMoneyPeriodPattern.FindStringSubmatch(pageText(input.Document, 0)); m != nil {
		reportDate = utils.ParsePeriodEndDate(m[1])
	}
	rate := e.rates.GetRate(ctx, utils.CurrencyUSD, utils.CurrencyINR, reportDate)
	logger.WithFields(logrus.Fields{"report_date": reportDate, "rate": rate}).Info("Using USD to INR rate")

	return scanPages(ctx, e.Name(), input.Document, 0, func(page document.Page) []models.Holding {
		upper := strings.ToUpper(page.Text())
		if !containsAny(upper, indMoneyHoldingKeywords...) {
			return nil
		}
		if strings.Contains(upper, "SUMMARY") && !strings.Contains(upper, "DETAILED") &&
			strings.Count(page.Text(), "Total") > 2 {
			return nil
		}
		logger.WithField("page", page.Number()).Info("Processing page")

		var holdings []models.Holding
		for tableIdx, table := range page.Tables() {
			if len(table) < indMoneyMinTableRows {
				continue
			}
			header := findHeaderRow(table, "Symbol", indMoneyHeaderSearchRows)
			if header < 0 {
				continue
			}
			for rowIdx := header + 1; rowIdx < len(table); rowIdx++ {
				row := table[rowIdx]
				if len(row) < indMoneyMinRowCells {
					continue
				}
				symbol := document.Cell(row, indMoneySymbolCol)
				if symbol == "" || strings.HasPrefix(symbol, "*") || symbol == "Symbol" ||
					symbol == "Total" || symbol == "Grand Total" {
					continue
				}
				marketUSD, costUSD := indMoneyValues(row)
				if marketUSD <= indMoneyMinCellUSD {
					continue
				}
				description := document.Cell(row, indMoneyDescriptionCol)

				holding, ok := emit(logger.WithField("page", page.Number()), models.HoldingSpec{
					ManagerName:     e.Name(),
					AssetType:       indMoneyAssetType,
					AssetName:       symbol + " - " + truncate(description, indMoneyDescriptionLength),
					InvestmentValue: costUSD * rate,
					MarketValue:     marketUSD * rate,
					ValueAsOfDate:   reportDate,
					InvestmentDate:  holdingDates[symbol],
					RawData: map[string]any{
						"symbol":           symbol,
						"market_value_usd": marketUSD,
						"cost_basis_usd":   costUSD,
						"exchange_rate":    rate,
						"page":             page.Number(),
						"table_index":      tableIdx,
						"row_index":        rowIdx,
					},
				})
				if ok {
					holdings = append(holdings, holding)
				}
			}
		}
		return holdings
	})
}

// indMoneyValues picks the market value and cost basis of a row. Column
// positions shift between statements, so any large enough amount past the
// minimum column counts and the preferred column wins.
func indMoneyValues(row []*string) (market, cost float64) {
	for col := range row {
		value := utils.CleanCellValue(row[col])
		if value <= indMoneyMinCellUSD {
			continue
		}
		if col >= indMoneyMarketMinCol && (market == 0 || col == indMoneyMarketPreferredCol) {
			market = value
		}
		if col >= indMoneyCostMinCol && (cost == 0 || col == indMoneyCostPreferredCol) {
			cost = value
		}
	}
	return market, cost
}

// ReadHoldingDates reads the IND Money holdings spreadsheet and returns the
// "holding since" date of each symbol as YYYY-MM-DD.
func ReadHoldingDates(path string) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return map[string]string{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	dates := map[string]string{}
	start := -1
	for i, row := range rows {
		if strings.Contains(strings.Join(row, " "), indMoneyAuxHeader) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return dates, nil
	}
	for _, row := range rows[start:] {
		if len(row) < 2 {
			continue
		}
		symbol := strings.TrimSpace(row[0])
		since := strings.TrimSpace(row[1])
		if symbol == "" || since == "" || symbol == indMoneyAuxDisclaimer {
			continue
		}
		if date := utils.FindWordDate(since); date != "" {
			dates[symbol] = date
		}
	}
	return dates, nil
}
