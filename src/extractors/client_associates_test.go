package extractors_test

import (
	"consolidator/src/document"
	"consolidator/src/extractors"
	"consolidator/src/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientAssociatesStatement = `PRIVATE AND CONFIDENTIAL
Report Date : 31/08/2025
SECURITY
Equity
XYZ Alpha Fund 01/02/2024
1000 1000.00 2000000.00 1100.00 2200000.00 0.00 200000.00 10.00 9.50 3.00
ABC Growth Fund 15/03/2023 1,000 1,000.00 10,00,000.00 1,250.00 12,50,000.00 0.00 2,50,000.00 25.00 14.20 5.00
Tiny Fund 01/01/2024 1 1 500 1 600
Edge Fund 01/01/2024 1 1 1,000.00 1 5,000.00
Equity - Total`

func TestClientAssociatesExtractor(t *testing.T) {
	ctx := context.Background()
	table := document.Table{
		document.Cells("Security", "Date", "Qty", "Unit Cost", "", "", "Total Cost", "Price", "Market Value"),
		document.Cells("ABC Growth Fund", "15/03/2023", "1000", "", "", "", "10,00,500.00", "", "12,50,000.00"),
		document.Cells("DEF Growth Fund", "10/10/2022", "10", "", "", "", "5,00,000", "", "6,00,000"),
		document.Cells("Equity - Total", "", "", "", "", "", "25,00,000", "", "30,00,000"),
	}
	doc := document.NewMemoryDocument(
		document.MemoryPage{Text: clientAssociatesStatement, Tables: []document.Table{table}},
		document.MemoryPage{Text: "PORTFOLIO RETURN (XIRR)\nGHI Growth Fund 01/01/2020 1 1 5,00,000.00 1 9,00,000.00"},
	)

	holdings := extractors.NewClientAssociatesExtractor().Extract(ctx, extractors.Input{Document: doc})

	require.Len(t, holdings, 3)
	found := byName(holdings)

	xyz := found["XYZ Alpha Fund"]
	assert.Equal(t, utils.ManagerClientAssociates, xyz.ManagerName)
	assert.Equal(t, "AIF", xyz.AssetType)
	assert.Equal(t, 2000000.0, xyz.CurrentInvestmentValue)
	assert.Equal(t, 2200000.0, xyz.CurrentMarketValue)
	require.NotNil(t, xyz.IRRPercentage)
	assert.Equal(t, 9.5, *xyz.IRRPercentage)
	assert.Equal(t, "2024-02-01", xyz.InvestmentDate)
	assert.Equal(t, "2025-08-31", xyz.ValueAsOfDate)
	assert.Equal(t, "Equity", xyz.RawData["category"])

	abc := found["ABC Growth Fund"]
	assert.Equal(t, 1000000.0, abc.CurrentInvestmentValue)
	assert.Equal(t, 1250000.0, abc.CurrentMarketValue)
	assert.Equal(t, 250000.0, abc.PLAmount)
	assert.Equal(t, 25.0, abc.PLPercentage)
	require.NotNil(t, abc.IRRPercentage)
	assert.Equal(t, 14.2, *abc.IRRPercentage)

	def := found["DEF Growth Fund"]
	assert.Equal(t, 500000.0, def.CurrentInvestmentValue)
	assert.Equal(t, 600000.0, def.CurrentMarketValue)
	assert.Equal(t, "2022-10-10", def.InvestmentDate)
	assert.Nil(t, def.IRRPercentage)
	assert.Equal(t, "table", def.RawData["source"])

	assert.NotContains(t, found, "Tiny Fund")
	assert.NotContains(t, found, "Edge Fund")
	assert.NotContains(t, found, "GHI Growth Fund")
}

func TestClientAssociatesExtractorWithoutReportDate(t *testing.T) {
	doc := document.NewMemoryDocument(document.MemoryPage{
		Text: "SECURITY\nAlpha Fund 01/01/2024 1 1 5,000.00 1 6,000.00",
	})

	holdings := extractors.NewClientAssociatesExtractor().Extract(context.Background(), extractors.Input{Document: doc})

	require.Len(t, holdings, 1)
	assert.Equal(t, "", holdings[0].ValueAsOfDate)
	assert.Nil(t, holdings[0].IRRPercentage)
}
