package services

import (
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

type ExportFormat string

const (
	FormatJSON ExportFormat = "JSON"
	FormatCSV  ExportFormat = "CSV"
	FormatXLSX ExportFormat = "XLSX"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	holdingsSheet   = "Holdings"
	summarySheet    = "Summary"
	duplicatesSheet = "Removed Duplicates"
	totalLabel      = "TOTAL"
)

var holdingColumns = []string{
	"Manager", "Asset Type", "Asset Name", "Investment Value", "Market Value",
	"Value As Of", "P&L", "P&L %", "IRR %", "Investment Date", "Potential Duplicate",
}

// ParseExportFormat accepts a format name in any case.
func ParseExportFormat(format string) (ExportFormat, error) {
	switch parsed := ExportFormat(strings.ToUpper(strings.TrimSpace(format))); parsed {
	case FormatJSON, FormatCSV, FormatXLSX:
		return parsed, nil
	default:
		return "", fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

type ExportServiceI interface {
	Export(ctx context.Context, w io.Writer, run *models.ExtractionRun, format ExportFormat) error
	WriteJSONFile(path string, holdings []models.Holding) error
	WriteXLSXFile(ctx context.Context, path string, run *models.ExtractionRun) error
	GenerateXLSX(ctx context.Context, run *models.ExtractionRun) (*excelize.File, error)
	SummaryByManager(holdings []models.Holding) dataframe.DataFrame
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

func (s *ExportService) Export(ctx context.Context, w io.Writer, run *models.ExtractionRun, format ExportFormat) error {
	switch format {
	case FormatJSON:
		return writeHoldingsJSON(w, run.Holdings)
	case FormatCSV:
		return utils.WriteCSV(w, holdingColumns, holdingRows(run.Holdings))
	case FormatXLSX:
		file, err := s.GenerateXLSX(ctx, run)
		if err != nil {
			return err
		}
		defer file.Close()
		return file.Write(w)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

// WriteJSONFile writes holdings as a JSON array, creating parent folders.
func (s *ExportService) WriteJSONFile(path string, holdings []models.Holding) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	return writeHoldingsJSON(file, holdings)
}

func (s *ExportService) WriteXLSXFile(ctx context.Context, path string, run *models.ExtractionRun) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	file, err := s.GenerateXLSX(ctx, run)
	if err != nil {
		return err
	}
	defer file.Close()
	return file.SaveAs(path)
}

// GenerateXLSX builds a workbook with the clean holdings, a per-manager
// summary and the removed duplicates.
func (s *ExportService) GenerateXLSX(ctx context.Context, run *models.ExtractionRun) (*excelize.File, error) {
	logger := utils.LoggerFromContext(ctx)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", holdingsSheet); err != nil {
		return nil, err
	}
	if err := writeSheet(f, holdingsSheet, holdingColumns, toCells(holdingRows(run.Holdings))); err != nil {
		return nil, err
	}

	summary := s.SummaryByManager(run.Holdings)
	if summary.Err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", summary.Err)
	}
	totals := models.Summarize(run.Holdings)
	summaryRows := append(frameRows(summary), []interface{}{
		totalLabel, totals.InvestmentValue, totals.MarketValue, totals.HoldingsCount, totals.PLAmount, totals.ReturnPercentage,
	})
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := writeSheet(f, summarySheet, summary.Names(), summaryRows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(duplicatesSheet); err != nil {
		return nil, err
	}
	var duplicateRows [][]interface{}
	for _, d := range run.RemovedDuplicates {
		duplicateRows = append(duplicateRows, []interface{}{
			d.DuplicateHolding.ManagerName, d.DuplicateHolding.AssetName, d.DuplicateHolding.CurrentMarketValue,
			d.OriginalManager, d.CanonicalKey,
		})
	}
	if err := writeSheet(f, duplicatesSheet, []string{"Manager", "Asset Name", "Market Value", "Kept From", "Canonical Key"}, duplicateRows); err != nil {
		return nil, err
	}

	if err := applyHeaderStyle(f); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	logger.WithField("holdings", len(run.Holdings)).Debug("Workbook generated")
	return f, nil
}

// SummaryByManager sums investment and market value per manager and adds
// P&L and return percentage columns.
func (s *ExportService) SummaryByManager(holdings []models.Holding) dataframe.DataFrame {
	keys := make([]string, len(holdings))
	values := make([][]float64, len(holdings))
	for i, h := range holdings {
		keys[i] = h.ManagerName
		values[i] = []float64{h.CurrentInvestmentValue, h.CurrentMarketValue}
	}
	df := utils.SumByKey("Manager", keys, []string{"Investment Value", "Market Value"}, values)

	investment := df.Col("Investment Value").Float()
	market := df.Col("Market Value").Float()
	pl := make([]float64, df.Nrow())
	returns := make([]float64, df.Nrow())
	for i := range pl {
		pl[i], returns[i] = models.ProfitAndLoss(investment[i], market[i])
	}
	return df.
		Mutate(series.New(pl, series.Float, "P&L")).
		Mutate(series.New(returns, series.Float, "Return %"))
}

func writeHoldingsJSON(w io.Writer, holdings []models.Holding) error {
	if holdings == nil {
		holdings = []models.Holding{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(holdings)
}

func holdingRows(holdings []models.Holding) [][]string {
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		irr := ""
		if h.IRRPercentage != nil {
			irr = formatAmount(*h.IRRPercentage)
		}
		rows = append(rows, []string{
			h.ManagerName,
			h.AssetType,
			h.AssetName,
			formatAmount(h.CurrentInvestmentValue),
			formatAmount(h.CurrentMarketValue),
			h.ValueAsOfDate,
			formatAmount(h.PLAmount),
			formatAmount(h.PLPercentage),
			irr,
			h.InvestmentDate,
			strings.Join(h.PotentialDuplicate, "; "),
		})
	}
	return rows
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// toCells converts string rows into sheet rows, writing amounts as numbers.
func toCells(rows [][]string) [][]interface{} {
	cells := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells[i] = make([]interface{}, len(row))
		for j, value := range row {
			if number, err := strconv.ParseFloat(value, 64); err == nil && isAmountColumn(j) {
				cells[i][j] = number
				continue
			}
			cells[i][j] = value
		}
	}
	return cells
}

func isAmountColumn(col int) bool {
	switch holdingColumns[col] {
	case "Investment Value", "Market Value", "P&L", "P&L %", "IRR %":
		return true
	}
	return false
}

func frameRows(df dataframe.DataFrame) [][]interface{} {
	rows := make([][]interface{}, df.Nrow())
	for i := range rows {
		rows[i] = make([]interface{}, df.Ncol())
		for j, name := range df.Names() {
			rows[i][j] = df.Col(name).Elem(i).Val()
		}
	}
	return rows
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	headerRow := make([]interface{}, len(header))
	for i, name := range header {
		headerRow[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func applyHeaderStyle(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	for _, sheet := range f.GetSheetList() {
		cols, err := f.GetCols(sheet)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			continue
		}
		lastCell, err := excelize.CoordinatesToCellName(len(cols), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", lastCell, headerStyle); err != nil {
			return err
		}
	}
	return nil
}
