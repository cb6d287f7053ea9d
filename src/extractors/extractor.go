// Package extractors turns issuer statements into holdings. Each issuer has
// its own Extractor; all of them share the page loop and record building in
// this file.
package extractors

import (
	"consolidator/src/document"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// Input is what an extractor reads: the statement and, for issuers that use
// one, the path of an auxiliary spreadsheet (may be empty).
type Input struct {
	Document      document.Document
	AuxiliaryPath string
}

// Extractor reads one issuer's statement. Extract never fails: unreadable
// pages and malformed rows are logged and skipped.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, input Input) []models.Holding
}

func managerLogger(ctx context.Context, manager string) *logrus.Entry {
	return utils.LoggerFromContext(ctx).WithField("manager", manager)
}

// pageHandler returns the holdings found on one page.
type pageHandler func(page document.Page) []models.Holding

// scanPages calls handle for every page from index start onwards. A page that
// cannot be read or whose handler panics contributes nothing.
func scanPages(ctx context.Context, manager string, doc document.Document, start int, handle pageHandler) []models.Holding {
	logger := managerLogger(ctx, manager)
	var holdings []models.Holding
	for i := start; i < doc.NumPages(); i++ {
		if ctx.Err() != nil {
			logger.WithError(ctx.Err()).Warn("Extraction cancelled")
			break
		}
		page, err := doc.Page(i)
		if err != nil {
			logger.WithError(err).WithField("page", i+1).Warn("Skipping unreadable page")
			continue
		}
		holdings = append(holdings, safeHandle(logger, page, handle)...)
	}
	return holdings
}

func safeHandle(logger *logrus.Entry, page document.Page, handle pageHandler) (holdings []models.Holding) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"page":  page.Number(),
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error("Page parsing failed")
			holdings = nil
		}
	}()
	return handle(page)
}

// pageText returns the text of page i, or "" when it cannot be read.
func pageText(doc document.Document, i int) string {
	if i < 0 || i >= doc.NumPages() {
		return ""
	}
	page, err := doc.Page(i)
	if err != nil {
		return ""
	}
	return page.Text()
}

// emit builds a holding from spec and logs it. Invalid specs are logged and
// dropped.
func emit(logger *logrus.Entry, spec models.HoldingSpec) (models.Holding, bool) {
	holding, err := models.NewHolding(spec)
	if err != nil {
		logger.WithError(err).WithField("asset", spec.AssetName).Warn("Discarding holding")
		return models.Holding{}, false
	}
	logger.WithFields(logrus.Fields{
		"asset":  holding.AssetName,
		"market": holding.CurrentMarketValue,
		"cost":   holding.CurrentInvestmentValue,
	}).Debug("Added holding")
	return holding, true
}

// material reports whether both values clear the issuer threshold.
func material(investment, market, threshold float64) bool {
	return investment > threshold && market > threshold
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// rowContains reports whether any cell of row contains needle.
func rowContains(row []*string, needle string) bool {
	for _, cell := range row {
		if cell != nil && strings.Contains(*cell, needle) {
			return true
		}
	}
	return false
}

// findHeaderRow returns the index of the first row within limit rows that
// has a cell containing header, or -1.
func findHeaderRow(table document.Table, header string, limit int) int {
	for i := 0; i < limit && i < len(table); i++ {
		if rowContains(table[i], header) {
			return i
		}
	}
	return -1
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func float64Ptr(v float64) *float64 {
	return &v
}
