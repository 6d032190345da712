package performance

// ActualCostProvider supplies the actual cost incurred for the work performed so far.
type ActualCostProvider interface {
	ActualCost(earnedValue float64) float64
}

// DefaultActualCostRatio reproduces the simulated 8% overrun used when no cost actuals feed exists.
const DefaultActualCostRatio = 1.08

// RatioCostProvider simulates actual cost as a fixed markup on earned value.
type RatioCostProvider struct {
	Ratio float64
}

// NewRatioCostProvider falls back to DefaultActualCostRatio for a non-positive ratio.
func NewRatioCostProvider(ratio float64) RatioCostProvider {
	if ratio <= 0 {
		ratio = DefaultActualCostRatio
	}
	return RatioCostProvider{Ratio: ratio}
}

func (p RatioCostProvider) ActualCost(earnedValue float64) float64 {
	return earnedValue * p.Ratio
}

// ActualCostFunc adapts a plain function to ActualCostProvider.
type ActualCostFunc func(earnedValue float64) float64

func (f ActualCostFunc) ActualCost(earnedValue float64) float64 {
	return f(earnedValue)
}
