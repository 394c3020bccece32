package store

import (
	"math"
	"testing"
	"time"

	"StockWatch/internal/model"
)

func quoteAt(i int, price float64) model.Quote {
	return model.Quote{
		Name:      "测试股票",
		Current:   price,
		Open:      price - 0.05,
		High:      price + 0.1,
		Low:       price - 0.1,
		PrevClose: price - 0.02,
		Timestamp: time.Date(2023, 11, 24, 9, 30, 0, 0, time.Local).Add(time.Duration(i) * 5 * time.Second),
	}
}

func dailyBars(n int) []model.Bar {
	bars := make([]model.Bar, n)
	day := time.Date(2023, 10, 1, 0, 0, 0, 0, time.Local)
	for i := range bars {
		c := 10 + float64(i)*0.1
		bars[i] = model.Bar{Date: day.AddDate(0, 0, i), Open: c - 0.05, High: c + 0.1, Low: c - 0.1, Close: c}
	}
	return bars
}

func TestAppendQuote_EvictionKeepsNewest(t *testing.T) {
	s := New(5, 3)
	for i := 0; i < 6; i++ {
		s.AppendQuote(quoteAt(i, 10+float64(i)))
	}

	samples := s.Samples()
	if len(samples) != 5 {
		t.Fatalf("expected capacity 5, got %d samples", len(samples))
	}
	// Oldest dropped first: prices 11..15 remain.
	for i, want := range []float64{11, 12, 13, 14, 15} {
		if samples[i].Price != want {
			t.Errorf("sample %d: expected price %v, got %v", i, want, samples[i].Price)
		}
	}
}

func TestAppendQuote_ContinuousProjectionTracksBuffer(t *testing.T) {
	s := New(5, 3)
	for i := 0; i < 7; i++ {
		s.AppendQuote(quoteAt(i, 10+float64(i)))
	}

	v := s.Snapshot()
	if v.Mode != ViewContinuous {
		t.Fatalf("expected continuous view, got %s", v.Mode)
	}
	if len(v.Points) != 5 {
		t.Fatalf("expected 5 projected points, got %d", len(v.Points))
	}
	if v.Points[0].Price != 12 || v.Points[4].Price != 16 {
		t.Errorf("projection out of sync with buffer: %v .. %v", v.Points[0].Price, v.Points[4].Price)
	}

	// Axis spans the whole buffer (12..16) with a 10% margin.
	span := 16.0 - 12.0
	wantMin := 12 - span*0.1
	wantMax := 16 + span*0.1
	if math.Abs(v.PriceAxis.Min-wantMin) > 1e-9 || math.Abs(v.PriceAxis.Max-wantMax) > 1e-9 {
		t.Errorf("price axis: expected [%v, %v], got [%v, %v]", wantMin, wantMax, v.PriceAxis.Min, v.PriceAxis.Max)
	}
	if !v.TimeAxis.From.Equal(v.Points[0].Time) || !v.TimeAxis.To.Equal(v.Points[4].Time) {
		t.Errorf("time axis out of sync: %+v", v.TimeAxis)
	}
}

func TestLoadBars_ReplacesEverything(t *testing.T) {
	s := New(50, 20)
	for i := 0; i < 10; i++ {
		s.AppendQuote(quoteAt(i, 15+float64(i)*0.01))
	}

	bars := dailyBars(30)
	s.LoadBars(bars, "浦发银行")

	if got := len(s.Bars()); got != 30 {
		t.Errorf("expected 30 bars, got %d", got)
	}
	samples := s.Samples()
	if len(samples) != 30 {
		t.Fatalf("expected samples reseeded from bar closes, got %d", len(samples))
	}
	if samples[0].Price != bars[0].Close || !samples[0].Time.Equal(bars[0].Date) {
		t.Errorf("first sample should mirror first bar close, got %+v", samples[0])
	}
	if s.DisplayName() != "浦发银行" {
		t.Errorf("display name: got %q", s.DisplayName())
	}
}

func TestDiscreteView_TrailingWindow(t *testing.T) {
	s := New(50, 20)
	s.LoadBars(dailyBars(30), "")
	s.SwitchMode(ViewDiscrete)

	v := s.Snapshot()
	if v.Mode != ViewDiscrete {
		t.Fatalf("expected discrete view, got %s", v.Mode)
	}
	if len(v.Bars) != 20 {
		t.Fatalf("expected trailing window of 20 bars, got %d", len(v.Bars))
	}
	all := s.Bars()
	if !v.Bars[0].Date.Equal(all[10].Date) {
		t.Errorf("window should start at bar 10, got %v", v.Bars[0].Date)
	}

	// Axis covers only the visible window: lows/highs of bars 10..29.
	lo := all[10].Low
	hi := all[29].High
	margin := (hi - lo) * 0.1
	if math.Abs(v.PriceAxis.Min-(lo-margin)) > 1e-9 || math.Abs(v.PriceAxis.Max-(hi+margin)) > 1e-9 {
		t.Errorf("price axis: expected [%v, %v], got [%v, %v]",
			lo-margin, hi+margin, v.PriceAxis.Min, v.PriceAxis.Max)
	}
}

func TestSwitchMode_Idempotent(t *testing.T) {
	s := New(50, 20)
	s.LoadBars(dailyBars(25), "")

	s.SwitchMode(ViewDiscrete)
	first := s.Snapshot()
	s.SwitchMode(ViewDiscrete)
	second := s.Snapshot()

	if len(first.Bars) != len(second.Bars) || first.PriceAxis != second.PriceAxis || first.TimeAxis != second.TimeAxis {
		t.Error("switching to the active mode must leave the view unchanged")
	}
}

func TestSwitchMode_RebuildsTargetView(t *testing.T) {
	s := New(50, 20)
	s.LoadBars(dailyBars(25), "")

	cont := s.Snapshot()
	if cont.Mode != ViewContinuous || len(cont.Points) != 25 {
		t.Fatalf("expected continuous view over 25 samples, got %+v", cont.Mode)
	}

	s.SwitchMode(ViewDiscrete)
	disc := s.Snapshot()
	if disc.Mode != ViewDiscrete || len(disc.Bars) != 20 {
		t.Fatalf("expected discrete window of 20, got %d", len(disc.Bars))
	}

	s.SwitchMode(ViewContinuous)
	back := s.Snapshot()
	if back.Mode != ViewContinuous || len(back.Points) != 25 {
		t.Fatalf("expected rebuilt continuous view, got %d points", len(back.Points))
	}
	if back.PriceAxis != cont.PriceAxis {
		t.Error("round-trip mode switch changed the continuous axis")
	}
}

func TestAppendQuote_DiscreteModeAppendsBar(t *testing.T) {
	s := New(50, 20)
	s.SwitchMode(ViewDiscrete)

	q := quoteAt(0, 12.5)
	s.AppendQuote(q)

	v := s.Snapshot()
	if len(v.Bars) != 1 {
		t.Fatalf("expected 1 bar from realtime quote in discrete mode, got %d", len(v.Bars))
	}
	b := v.Bars[0]
	if b.Open != q.Open || b.High != q.High || b.Low != q.Low || b.Close != q.Current {
		t.Errorf("bar should mirror quote OHLC, got %+v", b)
	}
}

func TestLatest_ReplacedWholesale(t *testing.T) {
	s := New(5, 3)
	if _, ok := s.Latest(); ok {
		t.Error("expected no latest quote before any append")
	}
	s.AppendQuote(quoteAt(0, 10))
	s.AppendQuote(quoteAt(1, 11))
	q, ok := s.Latest()
	if !ok || q.Current != 11 {
		t.Errorf("expected latest current 11, got %v (ok=%v)", q.Current, ok)
	}
}
