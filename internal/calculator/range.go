package calculator

import (
	"errors"
	"math"

	"StockWatch/internal/model"
)

// axisMargin widens a visible price range by 10% of its span on each side.
const axisMargin = 0.1

// PaddedRange returns the min and max of a price series widened by the axis
// margin. Used for the continuous view, computed over the entire buffer.
func PaddedRange(prices []float64) (lo, hi float64, err error) {
	if len(prices) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, p := range prices {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	margin := (hi - lo) * axisMargin
	return lo - margin, hi + margin, nil
}

// BarWindowRange returns the margin-widened low/high over the trailing window
// of bars. Used for the discrete view, computed over the visible slice only.
func BarWindowRange(bars []model.Bar, window int) (lo, hi float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	start := 0
	if window > 0 && len(bars) > window {
		start = len(bars) - window
	}
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for i := start; i < len(bars); i++ {
		if bars[i].Low < lo {
			lo = bars[i].Low
		}
		if bars[i].High > hi {
			hi = bars[i].High
		}
	}
	margin := (hi - lo) * axisMargin
	return lo - margin, hi + margin, nil
}
