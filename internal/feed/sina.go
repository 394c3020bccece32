package feed

import (
	"strings"
	"time"

	"StockWatch/internal/model"
)

// sinaLayout is the comma dialect's field contract. A payload line looks like
//
//	var hq_str_sz000001="平安银行,15.630,15.630,15.640,15.680,15.510,...,2023-11-24,15:00:03,00,";
//
// with the quoted section split on commas.
var sinaLayout = struct {
	minFields int
	name      int
	open      int
	prevClose int
	current   int
	high      int
	low       int
	date      int
	clock     int
}{
	minFields: 32,
	name:      0,
	open:      1,
	prevClose: 2,
	current:   3,
	high:      4,
	low:       5,
	date:      30,
	clock:     31,
}

const sinaTimeLayout = "2006-01-02 15:04:05"

// ParseSinaQuote decodes one Sina realtime snapshot payload.
func ParseSinaQuote(data []byte) (*model.Quote, error) {
	body, err := decodePayload(data)
	if err != nil {
		return nil, err
	}
	payload, err := extractQuoted(body)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(payload, ",")
	if len(fields) < sinaLayout.minFields {
		return nil, model.NewFeedError(model.ErrMalformedQuote,
			"sina payload has %d fields, need %d", len(fields), sinaLayout.minFields)
	}

	q := &model.Quote{
		Name:      fields[sinaLayout.name],
		Current:   parseField(fields, sinaLayout.current),
		Open:      parseField(fields, sinaLayout.open),
		High:      parseField(fields, sinaLayout.high),
		Low:       parseField(fields, sinaLayout.low),
		PrevClose: parseField(fields, sinaLayout.prevClose),
	}
	ts, err := time.ParseInLocation(sinaTimeLayout,
		fields[sinaLayout.date]+" "+fields[sinaLayout.clock], time.Local)
	if err == nil {
		q.Timestamp = ts
	}
	return q, nil
}
