// Package strategy derives trade signals from a historical bar sequence using
// moving-average crosses, MACD crosses, and RSI thresholds.
package strategy

import (
	"errors"
	"math"
	"time"

	"StockWatch/internal/calculator"
	"StockWatch/internal/model"
)

// Action is the direction of a trade signal.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// Signal marks one bar where a strategy flips direction.
type Signal struct {
	Date   time.Time
	Action Action
	Price  float64
	Reason string
}

// MACross emits a buy when the short moving average crosses above the long
// one (golden cross) and a sell on the reverse cross.
func MACross(bars []model.Bar, shortPeriod, longPeriod int) ([]Signal, error) {
	if shortPeriod >= longPeriod {
		return nil, errors.New("short period must be below long period")
	}
	shortMA, err := calculator.CalculateMA(bars, shortPeriod)
	if err != nil {
		return nil, err
	}
	longMA, err := calculator.CalculateMA(bars, longPeriod)
	if err != nil {
		return nil, err
	}

	var signals []Signal
	above := false
	primed := false
	for i := range bars {
		if math.IsNaN(shortMA[i]) || math.IsNaN(longMA[i]) {
			continue
		}
		now := shortMA[i] > longMA[i]
		if primed && now != above {
			action := ActionSell
			reason := "MA death cross"
			if now {
				action = ActionBuy
				reason = "MA golden cross"
			}
			signals = append(signals, Signal{
				Date:   bars[i].Date,
				Action: action,
				Price:  bars[i].Close,
				Reason: reason,
			})
		}
		above = now
		primed = true
	}
	return signals, nil
}

// MACDCross emits a buy when DIF crosses above DEA and a sell on the reverse
// cross.
func MACDCross(bars []model.Bar) ([]Signal, error) {
	macd, err := calculator.CalculateMACD(bars)
	if err != nil {
		return nil, err
	}

	var signals []Signal
	for i := 1; i < len(bars); i++ {
		crossedUp := macd.DIF[i] > macd.DEA[i] && macd.DIF[i-1] <= macd.DEA[i-1]
		crossedDown := macd.DIF[i] < macd.DEA[i] && macd.DIF[i-1] >= macd.DEA[i-1]
		switch {
		case crossedUp:
			signals = append(signals, Signal{
				Date: bars[i].Date, Action: ActionBuy, Price: bars[i].Close, Reason: "MACD golden cross",
			})
		case crossedDown:
			signals = append(signals, Signal{
				Date: bars[i].Date, Action: ActionSell, Price: bars[i].Close, Reason: "MACD death cross",
			})
		}
	}
	return signals, nil
}

// RSIThreshold emits a buy when RSI drops into the oversold zone and a sell
// when it climbs into the overbought zone. Staying inside a zone does not
// repeat the signal.
func RSIThreshold(bars []model.Bar, period int, overbought, oversold float64) ([]Signal, error) {
	if oversold >= overbought {
		return nil, errors.New("oversold threshold must be below overbought")
	}
	rsi, err := calculator.CalculateRSI(bars, period)
	if err != nil {
		return nil, err
	}

	var signals []Signal
	inOversold := false
	inOverbought := false
	for i := range bars {
		if math.IsNaN(rsi[i]) {
			continue
		}
		switch {
		case rsi[i] < oversold:
			if !inOversold {
				signals = append(signals, Signal{
					Date: bars[i].Date, Action: ActionBuy, Price: bars[i].Close, Reason: "RSI oversold",
				})
			}
			inOversold = true
			inOverbought = false
		case rsi[i] > overbought:
			if !inOverbought {
				signals = append(signals, Signal{
					Date: bars[i].Date, Action: ActionSell, Price: bars[i].Close, Reason: "RSI overbought",
				})
			}
			inOverbought = true
			inOversold = false
		default:
			inOversold = false
			inOverbought = false
		}
	}
	return signals, nil
}
