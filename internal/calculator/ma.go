package calculator

import (
	"errors"
	"math"

	"StockWatch/internal/model"
)

// CalculateMA returns the rolling mean of closing prices, aligned with the
// input bars. Positions before one full period are NaN.
func CalculateMA(bars []model.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(bars) == 0 {
		return nil, errors.New("no bars provided")
	}

	out := make([]float64, len(bars))
	var sum float64
	for i, b := range bars {
		sum += b.Close
		if i >= period {
			sum -= bars[i-period].Close
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// Closes extracts the closing price series from a bar sequence.
func Closes(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
