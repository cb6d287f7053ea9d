package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"regexp"
	"strings"
	"unicode"
)

// Kotak holding statement layout: [name, qty, avg price, holding cost,
// price, market value, ...] with the amounts either on the name row or on
// the row below it.
const (
	kotakFirstPage          = 4
	kotakDefaultReportDate  = "2025-08-31"
	kotakMinTableRows       = 3
	kotakHeaderSearchRows   = 5
	kotakSubHeaderRows      = 2
	kotakNameCol            = 0
	kotakCostMinCol         = 2
	kotakMarketMinCol       = 4
	kotakLargeAmount        = 10000
	kotakThreshold          = 1000
	kotakMinNameChars       = 5
	kotakMinInstrumentChars = 10
	kotakShortISINLength    = 15
	kotakBondsAssetType     = "Bonds"
)

var (
	kotakTextDate = regexp.MustCompile(`(?:Txn\.|Asset|Seg\.)\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
	kotakCellDate = regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`)

	kotakPageKeywords = []string{
		"HOLDING STATEMENT", "INSTRUMENT NAME", "MARKET VALUE",
		"HOLDING COST", "UNREALISED", "EQUITY", "FUND", "MUTUAL FUNDS",
	}
	kotakSkippedNameParts = []string{"Instrument Name", "Bal. No. Of", "Total", "Category"}
	kotakCategoryKeywords = []string{"MUTUAL FUNDS", "DIRECT EQUITY", "OTHER PRODUCTS", "BONDS", "BANK ACCOUNTS"}

	kotakInstrumentKeywords = []string{
		"FUND", "GROWTH", "LTD", "LIMITED", "NCD", "BD", "CORPORATION", "SERVICES", "BANK", "SCHEME",
	}
	kotakDateLinePrefixes = []string{"Txn.", "Asset", "Seg."}
	kotakSectorLines      = map[string]bool{
		"Direct Equity": true, "E-Retail/E-Commerce": true, "LIFE INSURANCE": true,
		"PRIVATE SECTOR BANK": true, "COMPUTERS - SOFTWARE & CONSULTING": true,
	}
)

var kotakPageKinds = DecisionTable[string, pageKind]{
	{Name: "portfolio activity", Then: transactionPage, When: func(text string) bool {
		return strings.Contains(strings.ToUpper(text), "PORTFOLIO ACTIVITY") || strings.Contains(text, "Activity Date")
	}},
	{Name: "notes", Then: notesPage, When: func(text string) bool {
		return strings.Contains(text, "Returns are based on XIRR")
	}},
}

var kotakAssetTypes = DecisionTable[assetContext, string]{
	{Name: "aif", Then: "AIF", When: nameHas("AIF", "CLASS A1")},
	{Name: "mutual funds", Then: "Mutual Funds", When: func(c assetContext) bool {
		return strings.Contains(c.Category, "MUTUAL FUNDS") || strings.Contains(c.Name, "FUND")
	}},
	{Name: "bonds", Then: kotakBondsAssetType, When: func(c assetContext) bool {
		return strings.Contains(c.Category, "BONDS") || containsAny(c.Name, "NCD", "BD")
	}},
	{Name: "direct equity", Then: "Direct Equity", When: func(c assetContext) bool {
		return strings.Contains(c.Category, "DIRECT EQUITY") || strings.Contains(c.Name, "LTD")
	}},
	{Name: "cash", Then: "Cash/Bank", When: categoryHas("BANK", "CASH")},
}

// SuspectedDuplicate flags Kotak holdings that are likely also reported by
// another manager.
type SuspectedDuplicate struct {
	Pattern *regexp.Regexp
	Manager string
}

var kotakSuspectedDuplicates = []SuspectedDuplicate{
	{Pattern: regexp.MustCompile(`ALTACURA.*AI.*ABSOLUTE.*RETURN.*FUND`), Manager: utils.ManagerClientAssociates},
	{Pattern: regexp.MustCompile(`ASK.*GROWTH.*INDIA.*FUND`), Manager: utils.ManagerClientAssociates},
	{Pattern: regexp.MustCompile(`WHITE.*OAK.*INDIA.*EQUITY.*FUND`), Manager: utils.ManagerClientAssociates},
	{Pattern: regexp.MustCompile(`ACCURACAP.*ALPHA`), Manager: utils.ManagerClientAssociates},
	{Pattern: regexp.MustCompile(`WHITE.*SPACE.*ALPHA.*FUND`), Manager: utils.ManagerClientAssociates},
}

type KotakExtractor struct {
	reportDate string
	duplicates []SuspectedDuplicate
}

func NewKotakExtractor(reportDate string) *KotakExtractor {
	if reportDate == "" {
		reportDate = kotakDefaultReportDate
	}
	return &KotakExtractor{reportDate: reportDate, duplicates: kotakSuspectedDuplicates}
}

func (e *KotakExtractor) Name() string {
	return utils.ManagerKotak
}

func (e *KotakExtractor) Extract(ctx context.Context, input Input) []models.Holding {
	logger := managerLogger(ctx, e.Name())

	return scanPages(ctx, e.Name(), input.Document, kotakFirstPage, func(page document.Page) []models.Holding {
		text := page.Text()
		if !containsAny(strings.ToUpper(text), kotakPageKeywords...) {
			return nil
		}
		if kotakPageKinds.Decide(text, holdingsPage) != holdingsPage {
			return nil
		}
		pageLogger := logger.WithField("page", page.Number())
		pageLogger.Info("Processing page")

		investmentDates := KotakInvestmentDates(text)

		var holdings []models.Holding
		for tableIdx, table := range page.Tables() {
			if len(table) < kotakMinTableRows {
				continue
			}
			header := findHeaderRow(table, "Instrument Name", kotakHeaderSearchRows)
			if header < 0 {
				continue
			}
			dataStart, purchaseDateCol := kotakPurchaseDateColumn(table, header)

			category := ""
			for rowIdx := dataStart; rowIdx < len(table); rowIdx++ {
				row := table[rowIdx]
				name := document.Cell(row, kotakNameCol)
				if name == "" || name == "-" || containsAny(name, kotakSkippedNameParts...) {
					continue
				}
				if containsAny(strings.ToUpper(name), kotakCategoryKeywords...) {
					category = name
					continue
				}
				if utils.IsNumericString(name) ||
					len(strings.NewReplacer(",", "", ".", "").Replace(name)) < kotakMinNameChars {
					continue
				}
				if !kotakValidInstrument(name) {
					continue
				}
				numeric := kotakNumericRow(table, rowIdx)
				if numeric == nil {
					continue
				}

				spec, ok := e.holdingFromRow(name, numeric, category, purchaseDateCol, investmentDates[name])
				if !ok || spec.MarketValue <= kotakThreshold {
					continue
				}
				spec.RawData = map[string]any{
					"category":        category,
					"page":            page.Number(),
					"table_index":     tableIdx,
					"raw_row":         rowStrings(numeric),
					"instrument_name": name,
				}
				if holding, ok := emit(pageLogger, spec); ok {
					holdings = append(holdings, holding)
				}
			}
		}
		return holdings
	})
}

// holdingFromRow assigns cost and market value from a numeric row: the first
// large amount from the cost column on is the cost, the next from the market
// column on is the market value. When that fails the first two large amounts
// are used in order.
func (e *KotakExtractor) holdingFromRow(name string, row []*string, category string, purchaseDateCol int, textDate string) (models.HoldingSpec, bool) {
	var cost, market float64
	for i := range row {
		value := utils.CleanCellValue(row[i])
		if value <= kotakLargeAmount {
			continue
		}
		if i >= kotakCostMinCol && cost == 0 {
			cost = value
		} else if i >= kotakMarketMinCol && market == 0 {
			market = value
		}
	}
	if cost == 0 || market == 0 {
		var amounts []float64
		for i := range row {
			if value := utils.CleanCellValue(row[i]); value > kotakLargeAmount {
				amounts = append(amounts, value)
			}
		}
		if len(amounts) >= 2 {
			cost, market = amounts[0], amounts[1]
		}
	}
	if cost <= 0 || market <= 0 {
		return models.HoldingSpec{}, false
	}

	investmentDate := textDate
	if investmentDate == "" && purchaseDateCol >= 0 {
		if cell := document.Cell(row, purchaseDateCol); kotakCellDate.MatchString(cell) {
			investmentDate = utils.ParseShortDate(cell)
		}
	}

	assetType := kotakAssetTypes.Decide(newAssetContext(name, category), "Other")
	// Bonds are carried at cost.
	if assetType == kotakBondsAssetType {
		market = cost
	}

	return models.HoldingSpec{
		ManagerName:        e.Name(),
		AssetType:          assetType,
		AssetName:          name,
		InvestmentValue:    cost,
		MarketValue:        market,
		ValueAsOfDate:      e.reportDate,
		InvestmentDate:     investmentDate,
		PotentialDuplicate: e.suspectedDuplicates(name),
	}, true
}

func (e *KotakExtractor) suspectedDuplicates(name string) []string {
	upper := strings.ToUpper(name)
	var managers []string
	for _, d := range e.duplicates {
		if d.Pattern.MatchString(upper) {
			managers = append(managers, d.Manager)
		}
	}
	return managers
}

// kotakPurchaseDateColumn looks for a "First Purchase Date" sub-header in the
// rows under the header. It returns the first data row and the column, or -1.
func kotakPurchaseDateColumn(table document.Table, header int) (int, int) {
	for r := header + 1; r < len(table) && r <= header+kotakSubHeaderRows; r++ {
		for c := range table[r] {
			cell := strings.ToUpper(document.Cell(table[r], c))
			if (strings.Contains(cell, "FIRST") && strings.Contains(cell, "PURCHASE")) || strings.Contains(cell, "PURCHASE DATE") {
				return r + 1, c
			}
		}
	}
	return header + 1, -1
}

// kotakValidInstrument rejects transaction references and short ISINs that
// show up in the name column.
func kotakValidInstrument(name string) bool {
	upper := strings.ToUpper(name)
	if strings.HasPrefix(upper, "INE0TLC") {
		return false
	}
	if len(name) < kotakShortISINLength && strings.HasPrefix(upper, "INE") {
		return false
	}
	return len(name) > kotakMinInstrumentChars
}

// kotakNumericRow returns the row carrying the amounts for the instrument on
// rowIdx: the row itself when it has amounts, else the next row.
func kotakNumericRow(table document.Table, rowIdx int) []*string {
	row := table[rowIdx]
	for _, cell := range row[1:] {
		if cell != nil && utils.IsNumericString(*cell) {
			return row
		}
	}
	if rowIdx+1 < len(table) {
		for _, cell := range table[rowIdx+1] {
			if cell != nil && utils.IsNumericString(*cell) {
				return table[rowIdx+1]
			}
		}
	}
	return nil
}

// KotakInvestmentDates maps instrument lines of the page text to the date on
// the "Txn. 7/04/22" style line that follows them.
func KotakInvestmentDates(text string) map[string]string {
	dates := map[string]string{}
	current := ""
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if kotakInstrumentLine(line) {
			current = line
			continue
		}
		if current == "" {
			continue
		}
		hasPrefix := false
		for _, prefix := range kotakDateLinePrefixes {
			if strings.HasPrefix(line, prefix) {
				hasPrefix = true
				break
			}
		}
		m := kotakTextDate.FindStringSubmatch(line)
		if !hasPrefix && m == nil {
			continue
		}
		if m != nil {
			dates[current] = utils.ParseShortDate(m[1])
		}
		current = ""
	}
	return dates
}

func kotakInstrumentLine(line string) bool {
	if len(line) <= 8 || kotakSectorLines[line] {
		return false
	}
	if !containsAny(strings.ToUpper(line), kotakInstrumentKeywords...) {
		return false
	}
	for _, prefix := range append(kotakDateLinePrefixes, "Total") {
		if strings.HasPrefix(line, prefix) {
			return false
		}
	}
	head := line
	if len(head) > 10 {
		head = head[:10]
	}
	return !strings.ContainsFunc(head, unicode.IsDigit)
}

func rowStrings(row []*string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		if cell != nil {
			out[i] = *cell
		}
	}
	return out
}
