package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Client Associates layout. A holding line reads
// "<name> <DD/MM/YYYY> qty unitCost totalCost price marketValue income g/l %g/l irr% %assets".
const (
	clientAssociatesCostPos          = 2
	clientAssociatesMarketPos        = 4
	clientAssociatesIRRPos           = 8
	clientAssociatesMinValues        = 5
	clientAssociatesDataLineValues   = 10
	clientAssociatesDataLineMinLen   = 20
	clientAssociatesLookAhead        = 3
	clientAssociatesThreshold        = 1000
	clientAssociatesDuplicateCostGap = 1000
	clientAssociatesAssetType        = "AIF"

	clientAssociatesTableHeaderRows = 3
	clientAssociatesTableMinCells   = 8
	clientAssociatesTableNameCol    = 0
	clientAssociatesTableDateCol    = 1
	clientAssociatesTableCostCol    = 6
	clientAssociatesTableMarketCol  = 8
)

var (
	clientAssociatesReportDate = regexp.MustCompile(`Report Date : (\d{2}/\d{2}/\d{4})`)
	clientAssociatesDateToken  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
	clientAssociatesDataLine   = regexp.MustCompile(`^[\d., ]+$`)

	clientAssociatesHoldingKeywords = []string{
		"SECURITY", "AIF", "FUND", "EQUITY", "DEBT", "MARKET VALUE",
		"TOTAL COST", "UNIT COST", "QUANTITY", "IRR%", "G/L",
	}
	clientAssociatesFundKeywords  = []string{"Fund", "AIF", "Alpha", "Growth"}
	clientAssociatesSkippedLines  = map[string]bool{"": true, "-": true, "PRIVATE AND CONFIDENTIAL": true}
	clientAssociatesSkippedNames  = map[string]bool{"Security": true, "Equity": true, "Debt": true, "-": true, "Equity - Total": true}
	clientAssociatesCategoryLines = map[string]bool{"Equity": true, "Debt": true}
)

// ClientAssociatesExtractor reads the AIF statement, primarily from text
// lines and secondarily from any "Security" table on the same page.
type ClientAssociatesExtractor struct{}

func NewClientAssociatesExtractor() *ClientAssociatesExtractor {
	return &ClientAssociatesExtractor{}
}

func (e *ClientAssociatesExtractor) Name() string {
	return utils.ManagerClientAssociates
}

func (e *ClientAssociatesExtractor) Extract(ctx context.Context, input Input) []models.Holding {
	logger := managerLogger(ctx, e.Name())

	reportDate := ""
	if m := clientAssociatesReportDate.FindStringSubmatch(pageText(input.Document, 0)); m != nil {
		reportDate = utils.ParseDate(m[1])
	}

	var found []models.Holding
	return scanPages(ctx, e.Name(), input.Document, 0, func(page document.Page) []models.Holding {
		text := page.Text()
		if !containsAny(strings.ToUpper(text), clientAssociatesHoldingKeywords...) {
			return nil
		}
		if strings.Contains(text, "RETURN (XIRR)") && !strings.Contains(text, "SECURITY") {
			return nil
		}
		pageLogger := logger.WithField("page", page.Number())
		pageLogger.Info("Processing page")

		var holdings []models.Holding
		add := func(spec models.HoldingSpec) {
			if holding, ok := emit(pageLogger, spec); ok {
				holdings = append(holdings, holding)
				found = append(found, holding)
			}
		}

		lines := strings.Split(text, "\n")
		category := ""
		for i := range lines {
			line := strings.TrimSpace(lines[i])
			if clientAssociatesCategoryLines[line] {
				category = line
				continue
			}
			if clientAssociatesSkippedLines[line] || strings.Contains(line, "Report Date") {
				continue
			}
			spec, ok := e.parseLine(lines, i, line)
			if !ok {
				continue
			}
			spec.ValueAsOfDate = reportDate
			spec.RawData["category"] = category
			spec.RawData["page"] = page.Number()
			add(spec)
		}

		for tableIdx, table := range page.Tables() {
			if len(table) < 2 || findHeaderRow(table, "Security", clientAssociatesTableHeaderRows) < 0 {
				continue
			}
			for rowIdx, row := range table {
				spec, ok := e.parseTableRow(row)
				if !ok || clientAssociatesAlreadyFound(found, spec) {
					continue
				}
				spec.ValueAsOfDate = reportDate
				spec.RawData = map[string]any{
					"page":        page.Number(),
					"table_index": tableIdx,
					"row_index":   rowIdx,
					"source":      "table",
				}
				add(spec)
			}
		}
		return holdings
	})
}

// parseLine reads a holding from text line i. Values follow the date on the
// same line unless one of the next lines is a pure numeric data line.
func (e *ClientAssociatesExtractor) parseLine(lines []string, i int, line string) (models.HoldingSpec, bool) {
	if !containsAny(line, clientAssociatesFundKeywords...) || !strings.ContainsAny(line, "0123456789") {
		return models.HoldingSpec{}, false
	}
	parts := strings.Fields(line)
	dateIdx := -1
	for j, part := range parts {
		if clientAssociatesDateToken.MatchString(part) {
			dateIdx = j
			break
		}
	}
	if dateIdx <= 0 {
		return models.HoldingSpec{}, false
	}

	values := clientAssociatesDataLineAfter(lines, i)
	if values == nil {
		values = parseAmountTokens(parts[dateIdx+1:])
	}

	var cost, market float64
	var irr *float64
	if len(values) >= clientAssociatesMinValues {
		cost = values[clientAssociatesCostPos]
		market = values[clientAssociatesMarketPos]
		if len(values) > clientAssociatesIRRPos {
			irr = float64Ptr(values[clientAssociatesIRRPos])
		}
	}
	if !material(cost, market, clientAssociatesThreshold) {
		return models.HoldingSpec{}, false
	}

	return models.HoldingSpec{
		ManagerName:     e.Name(),
		AssetType:       clientAssociatesAssetType,
		AssetName:       strings.Join(parts[:dateIdx], " "),
		InvestmentValue: cost,
		MarketValue:     market,
		InvestmentDate:  utils.ParseDate(parts[dateIdx]),
		IRRPercentage:   irr,
		RawData: map[string]any{
			"line_number":    i + 1,
			"numeric_values": values,
			"raw_line":       line,
		},
	}, true
}

func (e *ClientAssociatesExtractor) parseTableRow(row []*string) (models.HoldingSpec, bool) {
	if len(row) < clientAssociatesTableMinCells {
		return models.HoldingSpec{}, false
	}
	name := document.Cell(row, clientAssociatesTableNameCol)
	if name == "" || clientAssociatesSkippedNames[name] || strings.Contains(name, "Date") ||
		!containsAny(name, clientAssociatesFundKeywords...) {
		return models.HoldingSpec{}, false
	}
	cost := utils.CleanCellValue(cellAt(row, clientAssociatesTableCostCol))
	market := utils.CleanCellValue(cellAt(row, clientAssociatesTableMarketCol))
	if !material(cost, market, clientAssociatesThreshold) {
		return models.HoldingSpec{}, false
	}
	return models.HoldingSpec{
		ManagerName:     e.Name(),
		AssetType:       clientAssociatesAssetType,
		AssetName:       name,
		InvestmentValue: cost,
		MarketValue:     market,
		InvestmentDate:  utils.ParseDate(document.Cell(row, clientAssociatesTableDateCol)),
	}, true
}

// clientAssociatesAlreadyFound reports whether the text pass already produced
// this holding: same name and a cost within the duplicate gap.
func clientAssociatesAlreadyFound(found []models.Holding, spec models.HoldingSpec) bool {
	for _, h := range found {
		if h.AssetName == spec.AssetName &&
			math.Abs(h.CurrentInvestmentValue-spec.InvestmentValue) < clientAssociatesDuplicateCostGap {
			return true
		}
	}
	return false
}

// clientAssociatesDataLineAfter looks up to three lines ahead for a purely
// numeric line carrying exactly the ten statement columns.
func clientAssociatesDataLineAfter(lines []string, i int) []float64 {
	for offset := 1; offset <= clientAssociatesLookAhead && i+offset < len(lines); offset++ {
		candidate := strings.TrimSpace(lines[i+offset])
		if len(candidate) < clientAssociatesDataLineMinLen || !clientAssociatesDataLine.MatchString(candidate) {
			continue
		}
		if values := parseAmountTokens(strings.Fields(candidate)); len(values) == clientAssociatesDataLineValues {
			return values
		}
	}
	return nil
}

// parseAmountTokens parses tokens such as "99,99,500" or "-12.5" and skips
// anything else. Integers must be unsigned.
func parseAmountTokens(tokens []string) []float64 {
	var values []float64
	for _, token := range tokens {
		cleaned := strings.ReplaceAll(token, ",", "")
		if !strings.Contains(cleaned, ".") && !isDigits(cleaned) {
			continue
		}
		value, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		values = append(values, value)
	}
	return values
}

func cellAt(row []*string, col int) *string {
	if col < 0 || col >= len(row) {
		return nil
	}
	return row[col]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
