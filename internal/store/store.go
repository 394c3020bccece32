// Package store maintains the bounded, windowed in-memory view of the quote
// stream: a FIFO sample buffer feeding the continuous time-series view and a
// bar sequence feeding the discrete candlestick view.
package store

import (
	"sync"
	"time"

	"StockWatch/internal/calculator"
	"StockWatch/internal/model"
)

// ViewMode selects which presentation the store projects.
type ViewMode string

const (
	ViewContinuous ViewMode = "continuous"
	ViewDiscrete   ViewMode = "discrete"
)

// Default capacities: S samples in the continuous buffer, V bars visible in
// the discrete window.
const (
	DefaultMaxSamples  = 50
	DefaultVisibleBars = 20
)

// Axis is the visible numeric range of the price axis, margin included.
type Axis struct {
	Min float64
	Max float64
}

// TimeSpan is the visible range of the time axis.
type TimeSpan struct {
	From time.Time
	To   time.Time
}

// View is the derived, non-owning projection of the active presentation. It
// is recomputed wholesale, never patched incrementally.
type View struct {
	Mode      ViewMode
	Points    []model.Sample // continuous mode only
	Bars      []model.Bar    // discrete mode only, trailing window
	PriceAxis Axis
	TimeAxis  TimeSpan
}

// WindowedStore owns the sample buffer and bar sequence. It has no network
// awareness; the pipeline feeds it from the completion-delivery context, so
// all read-modify-write sequences take the mutex.
type WindowedStore struct {
	mu          sync.Mutex
	maxSamples  int
	visibleBars int

	samples []model.Sample
	bars    []model.Bar
	name    string

	latest    model.Quote
	hasLatest bool

	mode ViewMode
	view View
}

// New creates a store with the given capacities. Non-positive values fall
// back to the defaults. The continuous view starts active.
func New(maxSamples, visibleBars int) *WindowedStore {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	if visibleBars <= 0 {
		visibleBars = DefaultVisibleBars
	}
	s := &WindowedStore{
		maxSamples:  maxSamples,
		visibleBars: visibleBars,
		mode:        ViewContinuous,
	}
	s.view = View{Mode: ViewContinuous}
	return s
}

// AppendQuote records one realtime snapshot. At capacity the oldest sample is
// evicted first, and the active projection is rebuilt from the buffer's
// current contents. In discrete mode the quote also appends a bar built from
// its OHLC.
func (s *WindowedStore) AppendQuote(q model.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.samples) >= s.maxSamples {
		s.samples = append(s.samples[:0], s.samples[1:]...)
	}
	s.samples = append(s.samples, model.Sample{Time: q.Timestamp, Price: q.Current})
	s.latest = q
	s.hasLatest = true

	if s.mode == ViewDiscrete {
		s.bars = append(s.bars, model.Bar{
			Date:  q.Timestamp,
			Open:  q.Open,
			High:  q.High,
			Low:   q.Low,
			Close: q.Current,
		})
	}
	s.rebuildLocked()
}

// LoadBars replaces all held data with a freshly parsed historical sequence.
// Prior samples are discarded; the sample series is reseeded from the bar
// closes. No capacity bound applies to the backing bar sequence.
func (s *WindowedStore) LoadBars(bars []model.Bar, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = s.samples[:0]
	s.bars = append(s.bars[:0], bars...)
	for _, b := range bars {
		s.samples = append(s.samples, model.Sample{Time: b.Date, Price: b.Close})
	}
	if name != "" {
		s.name = name
	}
	s.rebuildLocked()
}

// SwitchMode changes the active presentation. Switching to the already active
// mode is a no-op; otherwise the new view is rebuilt from current contents.
func (s *WindowedStore) SwitchMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode != ViewContinuous && mode != ViewDiscrete {
		return
	}
	if s.mode == mode {
		return
	}
	s.mode = mode
	s.rebuildLocked()
}

// Mode returns the active presentation mode.
func (s *WindowedStore) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Snapshot returns a copy of the active projection.
func (s *WindowedStore) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.view
	v.Points = append([]model.Sample(nil), s.view.Points...)
	v.Bars = append([]model.Bar(nil), s.view.Bars...)
	return v
}

// Latest returns the most recent quote, if any has arrived.
func (s *WindowedStore) Latest() (model.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasLatest
}

// Bars returns a copy of the full backing bar sequence.
func (s *WindowedStore) Bars() []model.Bar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Bar(nil), s.bars...)
}

// Samples returns a copy of the sample buffer.
func (s *WindowedStore) Samples() []model.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Sample(nil), s.samples...)
}

// DisplayName returns the name carried by the last historical load.
func (s *WindowedStore) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *WindowedStore) rebuildLocked() {
	if s.mode == ViewDiscrete {
		s.rebuildDiscreteLocked()
	} else {
		s.rebuildContinuousLocked()
	}
}

// rebuildContinuousLocked recomputes the continuous projection from the whole
// sample buffer. The price axis spans the entire buffer with a 10% margin.
func (s *WindowedStore) rebuildContinuousLocked() {
	s.view = View{Mode: ViewContinuous}
	if len(s.samples) == 0 {
		return
	}

	s.view.Points = append([]model.Sample(nil), s.samples...)
	s.view.TimeAxis = TimeSpan{
		From: s.samples[0].Time,
		To:   s.samples[len(s.samples)-1].Time,
	}

	prices := make([]float64, len(s.samples))
	for i, p := range s.samples {
		prices[i] = p.Price
	}
	if lo, hi, err := calculator.PaddedRange(prices); err == nil {
		s.view.PriceAxis = Axis{Min: lo, Max: hi}
	}
}

// rebuildDiscreteLocked recomputes the discrete projection: the trailing
// window of visible bars, with the price axis computed over that window only.
func (s *WindowedStore) rebuildDiscreteLocked() {
	s.view = View{Mode: ViewDiscrete}
	if len(s.bars) == 0 {
		return
	}

	start := len(s.bars) - s.visibleBars
	if start < 0 {
		start = 0
	}
	visible := s.bars[start:]
	s.view.Bars = append([]model.Bar(nil), visible...)
	s.view.TimeAxis = TimeSpan{
		From: visible[0].Date,
		To:   visible[len(visible)-1].Date,
	}

	if lo, hi, err := calculator.BarWindowRange(s.bars, s.visibleBars); err == nil {
		s.view.PriceAxis = Axis{Min: lo, Max: hi}
	}
}
