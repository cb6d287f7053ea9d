package schemas

import "consolidator/src/models"

type ManagerSummary struct {
	Manager          string  `json:"manager"`
	HoldingsCount    int     `json:"holdings_count"`
	InvestmentValue  float64 `json:"investment_value"`
	MarketValue      float64 `json:"market_value"`
	PLAmount         float64 `json:"pl_amount"`
	ReturnPercentage float64 `json:"return_percentage"`
}

type HoldingsSummaryResponse struct {
	RunID    string                 `json:"run_id"`
	Folder   string                 `json:"folder"`
	Managers []ManagerSummary       `json:"managers"`
	Totals   models.PortfolioTotals `json:"totals"`
	Issuers  []models.IssuerResult  `json:"issuers"`
}

type ExtractionRequest struct {
	Folder string `json:"folder"`
}

type ExtractionResponse struct {
	RunID             string                 `json:"run_id"`
	Folder            string                 `json:"folder"`
	Issuers           []models.IssuerResult  `json:"issuers"`
	HoldingsCount     int                    `json:"holdings_count"`
	RemovedDuplicates int                    `json:"removed_duplicates"`
	Totals            models.PortfolioTotals `json:"totals"`
}
