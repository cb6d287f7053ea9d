package extractors

import (
	"consolidator/src/config"
	"consolidator/src/utils"
)

// NewExtractors returns one extractor per enabled issuer, in deduplication
// priority order. Issuers without a settings section are enabled.
func NewExtractors(cfg *config.Config, rates RateProvider) []Extractor {
	all := map[string]Extractor{
		utils.ManagerClientAssociates: NewClientAssociatesExtractor(),
		utils.ManagerINDMoney:         NewINDMoneyExtractor(rates),
		utils.ManagerYesBank:          NewYesBankExtractor(defaultReportDate(cfg, utils.ManagerYesBank)),
		utils.ManagerMotilalOswal:     NewMotilalOswalExtractor(),
		utils.ManagerIIFL360One:       NewIIFLExtractor(),
		utils.ManagerKotak:            NewKotakExtractor(defaultReportDate(cfg, utils.ManagerKotak)),
	}

	var enabled []Extractor
	for _, manager := range utils.ManagerPriority {
		if issuer, ok := cfg.Issuer(manager); ok && !issuer.Enabled {
			continue
		}
		enabled = append(enabled, all[manager])
	}
	return enabled
}

func defaultReportDate(cfg *config.Config, manager string) string {
	issuer, _ := cfg.Issuer(manager)
	return issuer.DefaultReportDate
}
