package models

import (
	"errors"
	"strings"
)

var (
	ErrEmptyAssetName          = errors.New("holding has an empty asset name")
	ErrNonPositiveMarketValue  = errors.New("holding market value must be positive")
	ErrNegativeInvestmentValue = errors.New("holding investment value must not be negative")
)

// Holding is one normalized portfolio line: one instrument held through one
// manager. Values are in INR. Holdings are built with NewHolding and passed by
// value; nothing downstream of an extractor changes them.
type Holding struct {
	ManagerName            string         `json:"manager_name" db:"manager_name"`
	AssetType              string         `json:"asset_type" db:"asset_type"`
	AssetName              string         `json:"asset_name" db:"asset_name"`
	CurrentInvestmentValue float64        `json:"current_investment_value" db:"current_investment_value"`
	CurrentMarketValue     float64        `json:"current_market_value" db:"current_market_value"`
	ValueAsOfDate          string         `json:"value_as_of_date" db:"value_as_of_date"`
	PLAmount               float64        `json:"pl_amount" db:"pl_amount"`
	PLPercentage           float64        `json:"pl_percentage" db:"pl_percentage"`
	IRRPercentage          *float64       `json:"irr_percentage" db:"irr_percentage"`
	InvestmentDate         string         `json:"investment_date" db:"investment_date"`
	PotentialDuplicate     []string       `json:"potential_duplicate,omitempty" db:"potential_duplicate"`
	RawData                map[string]any `json:"raw_data" db:"raw_data"`
}

// HoldingSpec lists every field an extractor supplies. P&L fields are not
// part of it: they are always derived from the two values.
type HoldingSpec struct {
	ManagerName        string
	AssetType          string
	AssetName          string
	InvestmentValue    float64
	MarketValue        float64
	ValueAsOfDate      string
	InvestmentDate     string
	IRRPercentage      *float64
	PotentialDuplicate []string
	RawData            map[string]any
}

// NewHolding validates spec and returns the finished record with P&L computed.
func NewHolding(spec HoldingSpec) (Holding, error) {
	name := strings.TrimSpace(spec.AssetName)
	if name == "" {
		return Holding{}, ErrEmptyAssetName
	}
	if spec.MarketValue <= 0 {
		return Holding{}, ErrNonPositiveMarketValue
	}
	if spec.InvestmentValue < 0 {
		return Holding{}, ErrNegativeInvestmentValue
	}

	plAmount, plPercentage := ProfitAndLoss(spec.InvestmentValue, spec.MarketValue)

	raw := make(map[string]any, len(spec.RawData))
	for k, v := range spec.RawData {
		raw[k] = v
	}
	var duplicates []string
	if len(spec.PotentialDuplicate) > 0 {
		duplicates = append(duplicates, spec.PotentialDuplicate...)
	}

	return Holding{
		ManagerName:            spec.ManagerName,
		AssetType:              spec.AssetType,
		AssetName:              name,
		CurrentInvestmentValue: spec.InvestmentValue,
		CurrentMarketValue:     spec.MarketValue,
		ValueAsOfDate:          spec.ValueAsOfDate,
		PLAmount:               plAmount,
		PLPercentage:           plPercentage,
		IRRPercentage:          spec.IRRPercentage,
		InvestmentDate:         spec.InvestmentDate,
		PotentialDuplicate:     duplicates,
		RawData:                raw,
	}, nil
}

// ProfitAndLoss returns market-investment and its percentage of investment
// (0 when investment is not positive).
func ProfitAndLoss(investment, market float64) (float64, float64) {
	pl := market - investment
	if investment <= 0 {
		return pl, 0
	}
	return pl, pl / investment * 100
}

// RemovedDuplicate pairs a dropped holding with the manager whose holding
// first claimed the same canonical key.
type RemovedDuplicate struct {
	DuplicateHolding Holding `json:"duplicate_holding"`
	OriginalManager  string  `json:"original_manager"`
	CanonicalKey     string  `json:"canonical_key"`
}
