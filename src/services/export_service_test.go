package services_test

import (
	"bytes"
	"consolidator/src/models"
	"consolidator/src/services"
	"consolidator/src/utils"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportRun(t *testing.T) *models.ExtractionRun {
	clean := []models.Holding{
		holding(t, utils.ManagerKotak, "HDFC BANK LTD", 160000),
		holding(t, utils.ManagerClientAssociates, "ABC Growth Fund - Series I", 150000),
		holding(t, utils.ManagerKotak, "Infosys Ltd", 40000),
	}
	return &models.ExtractionRun{
		ID:       "run-1",
		Holdings: clean,
		RemovedDuplicates: []models.RemovedDuplicate{{
			DuplicateHolding: holding(t, utils.ManagerKotak, "ABC GROWTH FUND SR I", 200000),
			OriginalManager:  utils.ManagerClientAssociates,
			CanonicalKey:     "ABC",
		}},
		Totals: models.Summarize(clean),
	}
}

func TestParseExportFormat(t *testing.T) {
	format, err := services.ParseExportFormat(" xlsx ")
	require.NoError(t, err)
	assert.Equal(t, services.FormatXLSX, format)

	_, err = services.ParseExportFormat("pdf")
	assert.ErrorIs(t, err, services.ErrUnsupportedFormat)
}

func TestExportServiceJSON(t *testing.T) {
	service := services.NewExportService()
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, service.Export(ctx, &buf, exportRun(t), services.FormatJSON))

	var decoded []models.Holding
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "HDFC BANK LTD", decoded[0].AssetName)
	assert.Equal(t, 80000.0, decoded[0].PLAmount)

	buf.Reset()
	require.NoError(t, service.Export(ctx, &buf, &models.ExtractionRun{}, services.FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportServiceCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, services.NewExportService().Export(context.Background(), &buf, exportRun(t), services.FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Manager", records[0][0])
	assert.Equal(t, []string{utils.ManagerKotak, "AIF", "HDFC BANK LTD", "80000.00", "160000.00"}, records[1][:5])
	assert.Equal(t, "100.00", records[1][7])
	assert.Equal(t, "", records[1][8])
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := services.NewExportService().Export(context.Background(), &buf, exportRun(t), services.ExportFormat("PDF"))
	assert.ErrorIs(t, err, services.ErrUnsupportedFormat)
}

func TestExportServiceSummaryByManager(t *testing.T) {
	df := services.NewExportService().SummaryByManager(exportRun(t).Holdings)

	require.NoError(t, df.Err)
	assert.Equal(t, []string{"Manager", "Investment Value", "Market Value", "Count", "P&L", "Return %"}, df.Names())
	assert.Equal(t, []string{utils.ManagerClientAssociates, utils.ManagerKotak}, df.Col("Manager").Records())
	assert.Equal(t, []float64{150000, 200000}, df.Col("Market Value").Float())
	assert.Equal(t, []float64{75000, 100000}, df.Col("P&L").Float())
	assert.Equal(t, []float64{100, 100}, df.Col("Return %").Float())
}

func TestExportServiceXLSX(t *testing.T) {
	ctx := context.Background()
	service := services.NewExportService()

	var buf bytes.Buffer
	require.NoError(t, service.Export(ctx, &buf, exportRun(t), services.FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Holdings", "Summary", "Removed Duplicates"}, f.GetSheetList())

	holdings, err := f.GetRows("Holdings")
	require.NoError(t, err)
	require.Len(t, holdings, 4)
	assert.Equal(t, "Asset Name", holdings[0][2])
	assert.Equal(t, "Infosys Ltd", holdings[3][2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, utils.ManagerClientAssociates, summary[1][0])
	assert.Equal(t, utils.ManagerKotak, summary[2][0])
	assert.Equal(t, "TOTAL", summary[3][0])
	assert.Equal(t, "3", summary[3][3])

	duplicates, err := f.GetRows("Removed Duplicates")
	require.NoError(t, err)
	require.Len(t, duplicates, 2)
	assert.Equal(t, []string{utils.ManagerKotak, "ABC GROWTH FUND SR I"}, duplicates[1][:2])
	assert.Equal(t, utils.ManagerClientAssociates, duplicates[1][3])
	assert.Equal(t, "ABC", duplicates[1][4])
}

func TestExportServiceWriteFiles(t *testing.T) {
	ctx := context.Background()
	service := services.NewExportService()
	dir := filepath.Join(t.TempDir(), "output", "nested")
	run := exportRun(t)

	jsonPath := filepath.Join(dir, "holdings.json")
	require.NoError(t, service.WriteJSONFile(jsonPath, run.Holdings))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded []models.Holding
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 3)

	xlsxPath := filepath.Join(dir, "holdings.xlsx")
	require.NoError(t, service.WriteXLSXFile(ctx, xlsxPath, run))
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}
