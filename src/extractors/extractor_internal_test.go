package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenPageDocument fails to return one of its pages.
type brokenPageDocument struct {
	*document.MemoryDocument
	broken int
}

func (d brokenPageDocument) Page(i int) (document.Page, error) {
	if i == d.broken {
		return nil, errors.New("corrupt content stream")
	}
	return d.MemoryDocument.Page(i)
}

func holdingFor(t *testing.T, name string) models.Holding {
	t.Helper()
	holding, err := models.NewHolding(models.HoldingSpec{ManagerName: "Test", AssetName: name, MarketValue: 10})
	require.NoError(t, err)
	return holding
}

func TestScanPages(t *testing.T) {
	pages := []document.MemoryPage{{Text: "one"}, {Text: "two"}, {Text: "panic"}, {Text: "four"}}

	t.Run("skips unreadable and panicking pages", func(t *testing.T) {
		doc := brokenPageDocument{MemoryDocument: document.NewMemoryDocument(pages...), broken: 1}

		holdings := scanPages(context.Background(), "Test", doc, 0, func(page document.Page) []models.Holding {
			if page.Text() == "panic" {
				var table document.Table
				_ = table[3]
			}
			return []models.Holding{holdingFor(t, page.Text())}
		})

		require.Len(t, holdings, 2)
		assert.Equal(t, "one", holdings[0].AssetName)
		assert.Equal(t, "four", holdings[1].AssetName)
	})

	t.Run("starts at the given page", func(t *testing.T) {
		var seen []int
		scanPages(context.Background(), "Test", document.NewMemoryDocument(pages...), 2, func(page document.Page) []models.Holding {
			seen = append(seen, page.Number())
			return nil
		})
		assert.Equal(t, []int{3, 4}, seen)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		scanPages(ctx, "Test", document.NewMemoryDocument(pages...), 0, func(document.Page) []models.Holding {
			calls++
			return nil
		})
		assert.Zero(t, calls)
	})
}

func TestEmitDropsInvalidHoldings(t *testing.T) {
	logger := managerLogger(context.Background(), "Test")

	_, ok := emit(logger, models.HoldingSpec{AssetName: "Fund", MarketValue: 0})
	assert.False(t, ok)

	holding, ok := emit(logger, models.HoldingSpec{AssetName: " Fund ", InvestmentValue: 100, MarketValue: 150})
	require.True(t, ok)
	assert.Equal(t, "Fund", holding.AssetName)
	assert.Equal(t, 50.0, holding.PLAmount)
}

func TestMaterial(t *testing.T) {
	assert.False(t, material(1000, 5000, 1000))
	assert.False(t, material(5000, 1000, 1000))
	assert.True(t, material(1000.01, 1000.01, 1000))
	assert.True(t, material(1, 1, 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "₹12", truncate("₹1234", 3))
}
