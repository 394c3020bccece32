package calculator

import (
	"errors"

	"StockWatch/internal/model"
)

// MACD holds the three derived series, each aligned with the input bars.
type MACD struct {
	DIF       []float64 // EMA12 − EMA26
	DEA       []float64 // EMA9 of DIF
	Histogram []float64 // 2 × (DIF − DEA)
}

// CalculateMACD computes the MACD indicator over closing prices using the
// standard 12/26/9 spans.
func CalculateMACD(bars []model.Bar) (*MACD, error) {
	if len(bars) == 0 {
		return nil, errors.New("no bars provided")
	}

	closes := Closes(bars)
	ema12 := ema(closes, 12)
	ema26 := ema(closes, 26)

	dif := make([]float64, len(closes))
	for i := range dif {
		dif[i] = ema12[i] - ema26[i]
	}
	dea := ema(dif, 9)

	hist := make([]float64, len(closes))
	for i := range hist {
		hist[i] = 2 * (dif[i] - dea[i])
	}
	return &MACD{DIF: dif, DEA: dea, Histogram: hist}, nil
}

// ema computes an exponential moving average seeded with the first value,
// alpha = 2/(span+1).
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
