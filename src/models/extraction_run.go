package models

import (
	"time"
)

// ExtractionRun is the outcome of one consolidation pass over a data folder.
type ExtractionRun struct {
	ID                string             `json:"id" db:"id"`
	Folder            string             `json:"folder" db:"folder"`
	StartedAt         time.Time          `json:"started_at" db:"started_at"`
	FinishedAt        time.Time          `json:"finished_at" db:"finished_at"`
	Issuers           []IssuerResult     `json:"issuers" db:"-"`
	Holdings          []Holding          `json:"holdings" db:"-"`
	RemovedDuplicates []RemovedDuplicate `json:"removed_duplicates" db:"-"`
	Totals            PortfolioTotals    `json:"totals" db:"-"`
}

// IssuerResult reports what a single manager's statement produced.
// Error is set when the statement could not be found or opened.
type IssuerResult struct {
	ManagerName   string `json:"manager_name" db:"manager_name"`
	File          string `json:"file" db:"file"`
	AuxiliaryFile string `json:"auxiliary_file,omitempty" db:"auxiliary_file"`
	HoldingsCount int    `json:"holdings_count" db:"holdings_count"`
	Error         string `json:"error,omitempty" db:"error"`
}

// PortfolioTotals aggregates a set of holdings.
type PortfolioTotals struct {
	HoldingsCount    int     `json:"holdings_count"`
	InvestmentValue  float64 `json:"total_investment_value"`
	MarketValue      float64 `json:"total_market_value"`
	PLAmount         float64 `json:"total_pl_amount"`
	ReturnPercentage float64 `json:"total_return_percentage"`
}

func Summarize(holdings []Holding) PortfolioTotals {
	var totals PortfolioTotals
	for _, h := range holdings {
		totals.HoldingsCount++
		totals.InvestmentValue += h.CurrentInvestmentValue
		totals.MarketValue += h.CurrentMarketValue
	}
	totals.PLAmount, totals.ReturnPercentage = ProfitAndLoss(totals.InvestmentValue, totals.MarketValue)
	return totals
}
