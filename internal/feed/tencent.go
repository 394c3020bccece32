package feed

import (
	"strings"
	"time"

	"StockWatch/internal/model"
)

// tencentLayout is the tilde dialect's field contract. The bid and ask
// ladders are interleaved price,volume pairs of five levels each starting at
// their offsets.
var tencentLayout = struct {
	minFields        int
	name             int
	current          int
	prevClose        int
	open             int
	bids             int
	asks             int
	timestamp        int
	high             int
	low              int
	volume           int
	amount           int
	turnoverRate     int
	peRatio          int
	circulatingValue int
	marketValue      int
	pbRatio          int
}{
	minFields:        47,
	name:             1,
	current:          3,
	prevClose:        4,
	open:             5,
	bids:             9,
	asks:             19,
	timestamp:        30,
	high:             33,
	low:              34,
	volume:           36,
	amount:           37,
	turnoverRate:     38,
	peRatio:          39,
	circulatingValue: 44,
	marketValue:      45,
	pbRatio:          46,
}

const tencentTimeLayout = "20060102150405"

// ParseTencentQuote decodes one Tencent realtime snapshot payload, including
// the five-level bid/ask ladders and the valuation fields.
func ParseTencentQuote(data []byte) (*model.Quote, error) {
	body, err := decodePayload(data)
	if err != nil {
		return nil, err
	}
	payload, err := extractQuoted(body)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(payload, "~")
	if len(fields) < tencentLayout.minFields {
		return nil, model.NewFeedError(model.ErrMalformedQuote,
			"tencent payload has %d fields, need %d", len(fields), tencentLayout.minFields)
	}

	q := &model.Quote{
		Name:             fields[tencentLayout.name],
		Current:          parseField(fields, tencentLayout.current),
		Open:             parseField(fields, tencentLayout.open),
		High:             parseField(fields, tencentLayout.high),
		Low:              parseField(fields, tencentLayout.low),
		PrevClose:        parseField(fields, tencentLayout.prevClose),
		Volume:           parseField(fields, tencentLayout.volume),
		Amount:           parseField(fields, tencentLayout.amount),
		TurnoverRate:     parseField(fields, tencentLayout.turnoverRate),
		PERatio:          parseField(fields, tencentLayout.peRatio),
		CirculatingValue: parseField(fields, tencentLayout.circulatingValue),
		MarketValue:      parseField(fields, tencentLayout.marketValue),
		PBRatio:          parseField(fields, tencentLayout.pbRatio),
	}

	for i := 0; i < model.LadderDepth; i++ {
		q.Bids[i] = model.PriceLevel{
			Price:  parseField(fields, tencentLayout.bids+2*i),
			Volume: parseField(fields, tencentLayout.bids+2*i+1),
		}
		q.Asks[i] = model.PriceLevel{
			Price:  parseField(fields, tencentLayout.asks+2*i),
			Volume: parseField(fields, tencentLayout.asks+2*i+1),
		}
	}

	if ts, err := time.ParseInLocation(tencentTimeLayout,
		fields[tencentLayout.timestamp], time.Local); err == nil {
		q.Timestamp = ts
	}

	// Zero denominators propagate as ±Inf/NaN rather than failing the quote.
	q.TotalShares = q.MarketValue / q.Current
	q.CirculatingShares = q.CirculatingValue / q.TotalShares

	return q, nil
}
