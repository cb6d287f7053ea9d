package utils_test

import (
	"bytes"
	"consolidator/src/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumByKey(t *testing.T) {
	df := utils.SumByKey("Manager",
		[]string{"Kotak", "IND Money", "Kotak"},
		[]string{"Investment", "Market"},
		[][]float64{{100, 150}, {10, 20}, {50, 40}},
	)

	require.NoError(t, df.Err)
	assert.Equal(t, []string{"Manager", "Investment", "Market", "Count"}, df.Names())
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"IND Money", "Kotak"}, df.Col("Manager").Records())
	assert.Equal(t, []float64{10, 150}, df.Col("Investment").Float())
	assert.Equal(t, []float64{20, 190}, df.Col("Market").Float())

	counts, err := df.Col("Count").Int()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, counts)
}

func TestSumByKeyEmpty(t *testing.T) {
	df := utils.SumByKey("Manager", nil, []string{"Market"}, nil)
	assert.Equal(t, 0, df.Nrow())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := utils.WriteCSV(&buf, []string{"name", "value"}, [][]string{{"ABC, Fund", "10"}, {"XYZ", "20"}})
	require.NoError(t, err)
	assert.Equal(t, "name,value\n\"ABC, Fund\",10\nXYZ,20\n", buf.String())
}
