package feed

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"StockWatch/internal/model"
)

// zjlxNameIndex is where the Tencent qt block carries the display name.
const zjlxNameIndex = 12

const historicalDateLayout = "2006-01-02"

// HistoricalResult is the outcome of one historical parse. RecordErrors holds
// one entry per violation type seen while skipping bad qfqday records; the
// parse as a whole still succeeds when only individual records fail.
type HistoricalResult struct {
	Bars         []model.Bar
	Name         string
	RecordErrors []*model.FeedError
}

type historicalStock struct {
	Qfqday [][]any          `json:"qfqday"`
	Qt     map[string][]any `json:"qt"`
}

type historicalEnvelope struct {
	Data map[string]historicalStock `json:"data"`
}

// ParseHistorical decodes the Tencent fqkline JSON envelope for a symbol into
// a chronologically ordered bar sequence, rebuilt from scratch. Records with
// an unparseable date or a non-positive price are skipped, not fatal.
func ParseHistorical(symbol string, data []byte) (*HistoricalResult, error) {
	if len(data) == 0 {
		return nil, model.NewFeedError(model.ErrEmptyField, "empty historical payload")
	}

	var env historicalEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, model.WrapFeedError(model.ErrMissingField, err, "decode historical payload")
	}
	if env.Data == nil {
		return nil, model.NewFeedError(model.ErrMissingField, "historical payload missing field %q", "data")
	}
	if len(env.Data) == 0 {
		return nil, model.NewFeedError(model.ErrEmptyField, "historical payload field %q is empty", "data")
	}

	stock, ok := env.Data[symbol]
	if !ok {
		return nil, model.NewFeedError(model.ErrMissingField, "historical payload missing symbol key %q", symbol)
	}
	if stock.Qfqday == nil {
		return nil, model.NewFeedError(model.ErrMissingField, "historical payload missing field %q", "qfqday")
	}
	if len(stock.Qfqday) == 0 {
		return nil, model.NewFeedError(model.ErrEmptyField, "historical payload field %q is empty", "qfqday")
	}
	if stock.Qt == nil {
		return nil, model.NewFeedError(model.ErrMissingField, "historical payload missing field %q", "qt")
	}
	if len(stock.Qt) == 0 {
		return nil, model.NewFeedError(model.ErrEmptyField, "historical payload field %q is empty", "qt")
	}

	res := &HistoricalResult{}
	seen := make(map[string]bool)
	report := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			res.RecordErrors = append(res.RecordErrors,
				model.NewFeedError(model.ErrInvalidRecord, "%s", msg))
		}
	}

	// Record layout: [date, open, close, high, low, ...], prices as strings.
	for _, rec := range stock.Qfqday {
		if len(rec) < 5 {
			report("historical record is truncated")
			continue
		}
		dateStr, ok := rec[0].(string)
		if !ok {
			report("invalid date in historical record")
			continue
		}
		date, err := time.ParseInLocation(historicalDateLayout, dateStr, time.Local)
		if err != nil {
			report("invalid date in historical record")
			continue
		}
		open, ok := recordPrice(rec[1])
		if !ok {
			report("invalid open price in historical record")
			continue
		}
		closeP, ok := recordPrice(rec[2])
		if !ok {
			report("invalid close price in historical record")
			continue
		}
		high, ok := recordPrice(rec[3])
		if !ok {
			report("invalid high price in historical record")
			continue
		}
		low, ok := recordPrice(rec[4])
		if !ok {
			report("invalid low price in historical record")
			continue
		}
		res.Bars = append(res.Bars, model.Bar{
			Date:  date,
			Open:  open,
			High:  high,
			Low:   low,
			Close: closeP,
		})
	}

	sort.Slice(res.Bars, func(i, j int) bool { return res.Bars[i].Date.Before(res.Bars[j].Date) })

	if zjlx, ok := stock.Qt["zjlx"]; ok && len(zjlx) > zjlxNameIndex {
		if name, ok := zjlx[zjlxNameIndex].(string); ok {
			res.Name = name
		}
	}
	return res, nil
}

// recordPrice decodes one qfqday price field: a positive numeric string.
func recordPrice(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}
