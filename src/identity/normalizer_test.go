package identity_test

import (
	"consolidator/src/identity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"generic growth fund series", "ABC Growth Fund - Series I", "ABC"},
		{"generic short series", "ABC GROWTH FUND SR I", "ABC"},
		{"second series stays distinct", "ABC Growth Fund - Series II", "ABC II"},
		{"direct plan boilerplate", "HDFC Flexi Cap Fund - Direct Plan - Growth", "HDFC FLEXI CAP"},
		{"limited and ltd match", "Reliance Industries Limited", "RELIANCE INDUSTRIES"},
		{"demat and erstwhile", "Tata Motors Ltd (DEMAT) (Erstwhile Tata Engg)", "TATA MOTORS"},
		{"class codes", "Carnelian Capital Class A1", "CARNELIAN CAPITAL"},
		{"ask series and date", "ASK Growth India Fund Series 2 31-Mar-23", "ASK GROWTH INDIA_SERIES 2_31-MAR-23"},
		{"ask without series", "ASK GROWTH INDIA FUND", "ASK GROWTH INDIA"},
		{"altacura keeps full name", "Altacura AI Absolute Return Fund 23-Feb-23", "ALTACURA_AI_ABSOLUTE_RETURN_FUND_23-FEB-23"},
		{"white oak", "White Oak India Equity Fund VI", "WHITE OAK INDIA EQUITY"},
		{"white oak dated", "WHITE OAK INDIA EQUITY FUND 12-Jan-24", "WHITE OAK INDIA EQUITY_12-JAN-24"},
		{"accuracap prime", "AccuraCap PrimeGen", "ACCURACAP ALPHA"},
		{"white space keeps fund number", "White Space Alpha Fund 2", "WHITE_SPACE_ALPHA_FUND_2"},
		{"motilal select", "Motilal Oswal Select Opportunities Fund Series II", "MOTILAL OSWAL SELECT OPPORTUNITIES"},
		{"motilal founders", "MOTILAL OSWAL FOUNDERS FUND", "MOTILAL OSWAL FOUNDERS"},
		{"motilal alternative", "Motilal Oswal Alternative Growth", "MOTILAL OSWAL ALTERNATIVE"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, identity.Normalize(tt.input))
		})
	}
}

func TestNormalizeSameTrancheAcrossManagers(t *testing.T) {
	assert.Equal(t, identity.Normalize("ABC Growth Fund - Series I"), identity.Normalize("ABC GROWTH FUND SR I"))
	assert.NotEqual(t, identity.Normalize("ABC Growth Fund - Series I"), identity.Normalize("ABC Growth Fund - Series II"))
}
