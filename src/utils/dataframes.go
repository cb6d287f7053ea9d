package utils

//nolint:depguard
import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// SumByKey groups rows by keys[i] and sums each value column, returning a
// frame with keyCol first, then valueCols and a "Count" column, sorted by key.
// values[i] holds the row's values in valueCols order.
func SumByKey(keyCol string, keys []string, valueCols []string, values [][]float64) dataframe.DataFrame {
	sums := map[string][]float64{}
	counts := map[string]int{}
	for i, key := range keys {
		if _, ok := sums[key]; !ok {
			sums[key] = make([]float64, len(valueCols))
		}
		for c := range valueCols {
			if c < len(values[i]) {
				sums[key][c] += values[i][c]
			}
		}
		counts[key]++
	}

	sortedKeys := make([]string, 0, len(sums))
	for key := range sums {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	columns := []series.Series{series.New(sortedKeys, series.String, keyCol)}
	for c, col := range valueCols {
		colData := make([]float64, len(sortedKeys))
		for j, key := range sortedKeys {
			colData[j] = sums[key][c]
		}
		columns = append(columns, series.New(colData, series.Float, col))
	}
	countData := make([]int, len(sortedKeys))
	for j, key := range sortedKeys {
		countData[j] = counts[key]
	}
	columns = append(columns, series.New(countData, series.Int, "Count"))

	return dataframe.New(columns...)
}
