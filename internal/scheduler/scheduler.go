// Package scheduler owns the request lifecycle: which symbol is observed,
// the polling timer, and the single in-flight fetch.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockWatch/internal/feed"
	"StockWatch/internal/model"

	"github.com/robfig/cron/v3"
)

// Mode is the scheduler's request state.
type Mode string

const (
	ModeIdle              Mode = "idle"
	ModePolling           Mode = "polling"
	ModeHistoricalPending Mode = "historical_pending"
)

// DefaultInterval is the polling period between realtime fetches.
const DefaultInterval = 5 * time.Second

// Getter issues one abortable GET. fetcher.Client satisfies it.
type Getter interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Handler receives fetch completions. Completions are always delivered from a
// fetch goroutine, never synchronously from a scheduler call, and stale ones
// are dropped before reaching the handler.
type Handler interface {
	HandleQuotePayload(symbol string, payload []byte)
	HandleHistoricalPayload(symbol string, payload []byte)
	HandleError(err *model.FeedError)
}

// Scheduler drives periodic realtime polling and one-shot historical
// requests. At most one fetch is in flight at any instant; issuing a new
// request supersedes and cancels the prior one. Every dispatched fetch
// carries a generation, every state change bumps it, and a completion whose
// generation no longer matches is discarded.
type Scheduler struct {
	getter   Getter
	handler  Handler
	source   feed.Source
	interval time.Duration
	cron     *cron.Cron

	mu     sync.Mutex
	entry  cron.EntryID
	symbol string
	mode   Mode
	gen    uint64
	cancel context.CancelFunc
}

// New creates a Scheduler and starts its timer runner. Call Close to release it.
func New(getter Getter, handler Handler, source feed.Source, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		getter:   getter,
		handler:  handler,
		source:   source,
		interval: interval,
		cron:     cron.New(),
		mode:     ModeIdle,
	}
	s.cron.Start()
	return s
}

// StartPolling validates the symbol, replaces the tracked one, and begins
// fixed-interval realtime polling. The first fetch fires immediately, ahead
// of the first timer tick. Any in-flight request is cancelled.
func (s *Scheduler) StartPolling(symbol string) error {
	if err := model.ValidateSymbol(symbol); err != nil {
		return err
	}

	s.mu.Lock()
	s.cancelInFlightLocked()
	s.gen++
	s.symbol = symbol
	s.mode = ModePolling
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
	id, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.tick)
	if err != nil {
		s.mode = ModeIdle
		s.mu.Unlock()
		return fmt.Errorf("schedule polling: %w", err)
	}
	s.entry = id
	s.mu.Unlock()

	log.Printf("[INFO] polling started for %s every %s", symbol, s.interval)
	s.tick()
	return nil
}

// RequestHistorical stops any active polling, cancels any in-flight request,
// and issues exactly one historical fetch for the given date range.
func (s *Scheduler) RequestHistorical(symbol string, start, end time.Time) error {
	if symbol == "" {
		return model.NewFeedError(model.ErrEmptySymbol, "historical request needs a symbol")
	}
	if !start.Before(end) {
		return model.NewFeedError(model.ErrInvalidRange, "start %s is not before end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	s.mu.Lock()
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
	s.cancelInFlightLocked()
	s.symbol = symbol
	s.mode = ModeHistoricalPending
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	log.Printf("[INFO] historical fetch dispatched for %s", symbol)
	go s.fetchHistorical(ctx, symbol, start, end, gen)
	return nil
}

// Stop halts the timer and cancels the in-flight request if any. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
	s.cancelInFlightLocked()
	s.gen++
	s.mode = ModeIdle
	s.mu.Unlock()
}

// Close stops the scheduler and its timer runner.
func (s *Scheduler) Close() {
	s.Stop()
	<-s.cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Mode returns the current request state.
func (s *Scheduler) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Symbol returns the symbol under observation.
func (s *Scheduler) Symbol() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbol
}

// tick dispatches one realtime fetch, superseding any still in flight.
func (s *Scheduler) tick() {
	s.mu.Lock()
	if s.mode != ModePolling || s.symbol == "" {
		s.mu.Unlock()
		return
	}
	s.cancelInFlightLocked()
	s.gen++
	gen := s.gen
	symbol := s.symbol
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	go s.fetchQuote(ctx, symbol, gen)
}

func (s *Scheduler) fetchQuote(ctx context.Context, symbol string, gen uint64) {
	payload, err := s.getter.Fetch(ctx, feed.QuoteURL(s.source, symbol), feed.QuoteHeaders(s.source))
	if !s.claim(gen) {
		return
	}
	if err != nil {
		s.handler.HandleError(model.AsFeedError(err))
		return
	}
	s.handler.HandleQuotePayload(symbol, payload)
}

func (s *Scheduler) fetchHistorical(ctx context.Context, symbol string, start, end time.Time, gen uint64) {
	payload, err := s.getter.Fetch(ctx, feed.HistoricalURL(symbol, start, end), nil)
	if !s.claim(gen) {
		return
	}
	if err != nil {
		s.handler.HandleError(model.AsFeedError(err))
		return
	}
	s.handler.HandleHistoricalPayload(symbol, payload)
}

// claim checks a completion's generation against the current one. A stale
// completion is dropped; its result never reaches the handler.
func (s *Scheduler) claim(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.cancel = nil
	if s.mode == ModeHistoricalPending {
		s.mode = ModeIdle
	}
	return true
}

func (s *Scheduler) cancelInFlightLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
