package model

import "time"

// LadderDepth is the number of bid/ask levels carried by the realtime feeds.
const LadderDepth = 5

// PriceLevel is one level of the bid or ask ladder.
type PriceLevel struct {
	Price  float64
	Volume float64
}

// Quote is one realtime snapshot of a stock. It is replaced wholesale on every
// successful fetch and never partially mutated.
type Quote struct {
	Name      string
	Current   float64
	Open      float64
	High      float64
	Low       float64
	PrevClose float64
	Timestamp time.Time

	// Bids and Asks are ordered best to worst. Only the Tencent feed fills them.
	Bids [LadderDepth]PriceLevel
	Asks [LadderDepth]PriceLevel

	Volume           float64
	Amount           float64
	MarketValue      float64
	CirculatingValue float64

	// TotalShares = MarketValue / Current and
	// CirculatingShares = CirculatingValue / TotalShares.
	// A zero denominator propagates as ±Inf or NaN.
	TotalShares       float64
	CirculatingShares float64

	TurnoverRate float64
	PERatio      float64
	PBRatio      float64
}

// Sample is one point of the continuous time-series view.
type Sample struct {
	Time  time.Time
	Price float64
}
