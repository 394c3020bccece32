package model

import "time"

// Bar is one daily OHLC historical record. All four prices are positive; a
// record violating that is dropped during parsing and never becomes a Bar.
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}
