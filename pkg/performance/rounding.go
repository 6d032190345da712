package performance

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero to the given number of decimals. Ties are decided on the shortest decimal
// form of v, so Round(1.005, 2) is 1.01 even though the float64 nearest to 1.005 lies just below it.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if decimals < 0 {
		decimals = 0
	}
	r, _ := decimal.NewFromFloat(v).Round(int32(decimals)).Float64()
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
