package calculator

import (
	"errors"
	"math"

	"StockWatch/internal/model"
)

// CalculateRSI returns the rolling relative strength index over closing
// prices, aligned with the input bars. Gains and losses are simple rolling
// means of the close-to-close deltas; positions without a full window of
// deltas are NaN. A window with no losses yields 100.
func CalculateRSI(bars []model.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(bars) == 0 {
		return nil, errors.New("no bars provided")
	}

	out := make([]float64, len(bars))
	for i := range out {
		out[i] = math.NaN()
	}

	for i := period; i < len(bars); i++ {
		var gain, loss float64
		for j := i - period + 1; j <= i; j++ {
			delta := bars[j].Close - bars[j-1].Close
			if delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}
		gain /= float64(period)
		loss /= float64(period)
		rs := gain / loss
		out[i] = 100 - 100/(1+rs)
	}
	return out, nil
}
