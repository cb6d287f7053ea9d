package extractors_test

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"context"
)

type RateProviderMock struct {
	GetRateFunc func(ctx context.Context, from, to, period string) float64
	periods     []string
}

func (m *RateProviderMock) GetRate(ctx context.Context, from, to, period string) float64 {
	m.periods = append(m.periods, period)
	return m.GetRateFunc(ctx, from, to, period)
}

func fixedRate(rate float64) *RateProviderMock {
	return &RateProviderMock{GetRateFunc: func(context.Context, string, string, string) float64 { return rate }}
}

// filler returns n pages without holdings content.
func filler(n int) []document.MemoryPage {
	pages := make([]document.MemoryPage, n)
	for i := range pages {
		pages[i] = document.MemoryPage{Text: "cover page"}
	}
	return pages
}

// wideRow builds a row of n cells with values at the given columns.
func wideRow(n int, values map[int]string) []*string {
	cells := make([]string, n)
	for col, value := range values {
		cells[col] = value
	}
	return document.Cells(cells...)
}

func byName(holdings []models.Holding) map[string]models.Holding {
	out := make(map[string]models.Holding, len(holdings))
	for _, h := range holdings {
		out[h.AssetName] = h
	}
	return out
}
