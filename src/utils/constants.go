package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"
const MonthFolderLayout = "January 2006"

const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

// DisclaimerMarker prefixes footer rows some statements emit in the asset
// name column; such rows are never holdings.
const DisclaimerMarker = "Disclaimer"

// Manager names, in deduplication priority order (most detailed first).
const (
	ManagerClientAssociates = "Client Associates"
	ManagerINDMoney         = "IND Money"
	ManagerYesBank          = "Yes Bank"
	ManagerMotilalOswal     = "Motilal Oswal"
	ManagerIIFL360One       = "IIFL 360 One"
	ManagerKotak            = "Kotak"
)

// ManagerPriority is the fixed order in which issuers claim canonical keys.
var ManagerPriority = []string{
	ManagerClientAssociates,
	ManagerINDMoney,
	ManagerYesBank,
	ManagerMotilalOswal,
	ManagerIIFL360One,
	ManagerKotak,
}
