package feed

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"StockWatch/internal/model"
)

func tencentFields() []string {
	fields := make([]string, 50)
	for i := range fields {
		fields[i] = "0"
	}
	fields[0] = "1"
	fields[1] = "平安银行"
	fields[2] = "000001"
	fields[3] = "11.80" // current
	fields[4] = "11.75" // prev close
	fields[5] = "11.78" // open
	bids := []string{"11.79", "100", "11.78", "200", "11.77", "300", "11.76", "400", "11.75", "500"}
	copy(fields[9:], bids)
	asks := []string{"11.80", "110", "11.81", "210", "11.82", "310", "11.83", "410", "11.84", "510"}
	copy(fields[19:], asks)
	fields[30] = "20231124150003"
	fields[33] = "11.88"   // high
	fields[34] = "11.66"   // low
	fields[36] = "800000"  // volume
	fields[37] = "944000"  // amount
	fields[38] = "0.48"    // turnover rate
	fields[39] = "4.30"    // P/E
	fields[44] = "2290.50" // circulating value
	fields[45] = "2293.10" // market value
	fields[46] = "0.63"    // P/B
	return fields
}

func tencentPayload(fields []string) []byte {
	return []byte(`v_sz000001="` + strings.Join(fields, "~") + `";`)
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseTencentQuote(t *testing.T) {
	q, err := ParseTencentQuote(tencentPayload(tencentFields()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Name != "平安银行" {
		t.Errorf("name: expected 平安银行, got %q", q.Name)
	}
	if q.Current != 11.80 || q.Open != 11.78 || q.High != 11.88 || q.Low != 11.66 || q.PrevClose != 11.75 {
		t.Errorf("prices: got current=%v open=%v high=%v low=%v prevClose=%v",
			q.Current, q.Open, q.High, q.Low, q.PrevClose)
	}
	want := time.Date(2023, 11, 24, 15, 0, 3, 0, time.Local)
	if !q.Timestamp.Equal(want) {
		t.Errorf("timestamp: expected %v, got %v", want, q.Timestamp)
	}
	if q.Bids[0] != (model.PriceLevel{Price: 11.79, Volume: 100}) {
		t.Errorf("best bid: got %+v", q.Bids[0])
	}
	if q.Bids[4] != (model.PriceLevel{Price: 11.75, Volume: 500}) {
		t.Errorf("worst bid: got %+v", q.Bids[4])
	}
	if q.Asks[0] != (model.PriceLevel{Price: 11.80, Volume: 110}) {
		t.Errorf("best ask: got %+v", q.Asks[0])
	}
	if q.Asks[4] != (model.PriceLevel{Price: 11.84, Volume: 510}) {
		t.Errorf("worst ask: got %+v", q.Asks[4])
	}
	if q.Volume != 800000 || q.Amount != 944000 {
		t.Errorf("volume/amount: got %v/%v", q.Volume, q.Amount)
	}
	if q.TurnoverRate != 0.48 || q.PERatio != 4.30 || q.PBRatio != 0.63 {
		t.Errorf("ratios: got turnover=%v pe=%v pb=%v", q.TurnoverRate, q.PERatio, q.PBRatio)
	}
	if q.MarketValue != 2293.10 || q.CirculatingValue != 2290.50 {
		t.Errorf("valuation: got market=%v circulating=%v", q.MarketValue, q.CirculatingValue)
	}

	wantTotal := 2293.10 / 11.80
	if !approxEq(q.TotalShares, wantTotal) {
		t.Errorf("total shares: expected %v, got %v", wantTotal, q.TotalShares)
	}
	wantCirc := 2290.50 / wantTotal
	if !approxEq(q.CirculatingShares, wantCirc) {
		t.Errorf("circulating shares: expected %v, got %v", wantCirc, q.CirculatingShares)
	}
}

func TestParseTencentQuote_ZeroPriceDerivation(t *testing.T) {
	fields := tencentFields()
	fields[3] = "0.00"
	q, err := ParseTencentQuote(tencentPayload(fields))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(q.TotalShares, 1) {
		t.Errorf("expected +Inf total shares for zero current price, got %v", q.TotalShares)
	}
	if q.CirculatingShares != 0 {
		t.Errorf("expected zero circulating shares against infinite total, got %v", q.CirculatingShares)
	}
}

func TestParseTencentQuote_TooFewFields(t *testing.T) {
	_, err := ParseTencentQuote(tencentPayload(tencentFields()[:40]))
	if err == nil {
		t.Fatal("expected error for short payload")
	}
	var fe *model.FeedError
	if !errors.As(err, &fe) || fe.Kind != model.ErrMalformedQuote {
		t.Errorf("expected MALFORMED_QUOTE, got %v", err)
	}
}
