package calculation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// percentileKeys are the bands reported for probabilistic results: a 95%
// credible interval around the quartiles and median.
var percentileKeys = map[string]float64{
	"2.5th":  0.025,
	"25th":   0.25,
	"50th":   0.5,
	"75th":   0.75,
	"97.5th": 0.975,
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// percentiles returns interpolated percentile bands. The input slice is
// sorted in place.
func percentiles(values []decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(percentileKeys))
	if len(values) == 0 {
		for key := range percentileKeys {
			out[key] = decimal.Zero
		}
		return out
	}
	sortDecimals(values)
	for key, q := range percentileKeys {
		out[key] = percentileOf(values, q)
	}
	return out
}

// percentileOf linearly interpolates between the two nearest order
// statistics. The slice must already be sorted.
func percentileOf(sorted []decimal.Decimal, q float64) decimal.Decimal {
	index := q * float64(len(sorted)-1)
	lower := int(index)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	fraction := decimal.NewFromFloat(index - float64(lower))
	return sorted[lower].Add(sorted[lower+1].Sub(sorted[lower]).Mul(fraction))
}
