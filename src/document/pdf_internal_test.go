package document

import (
	"testing"

	"github.com/dslipak/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w}
}

func TestLayoutLines(t *testing.T) {
	texts := []pdf.Text{
		// second line first to check ordering
		run("AAPL", 50, 680, 20),
		run("1,000.00", 200, 680.5, 35),
		run("Monthly", 50, 700, 30),
		run("Statement", 82, 700, 40),
		run("Symbol", 50, 690, 25),
		run("Value", 200, 690, 20),
	}

	lines := layoutLines(texts)
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Monthly Statement"}, lines[0])
	assert.Equal(t, []string{"Symbol", "Value"}, lines[1])
	assert.Equal(t, []string{"AAPL", "1,000.00"}, lines[2])

	assert.Equal(t, "Monthly Statement\nSymbol Value\nAAPL 1,000.00", joinLines(lines))

	tables := groupTables(lines)
	require.Len(t, tables, 1)
	assert.Len(t, tables[0], 2)
	assert.Equal(t, "AAPL", Cell(tables[0][1], 0))
}

func TestGroupTablesNeedsTwoRows(t *testing.T) {
	lines := [][]string{{"a", "b"}, {"single"}, {"c", "d"}}
	assert.Empty(t, groupTables(lines))
}
