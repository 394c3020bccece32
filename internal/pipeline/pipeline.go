// Package pipeline wires fetcher, parsers, scheduler, and store together and
// surfaces results to the consumer through callbacks.
package pipeline

import (
	"log"
	"time"

	"StockWatch/internal/calculator"
	"StockWatch/internal/feed"
	"StockWatch/internal/model"
	"StockWatch/internal/scheduler"
	"StockWatch/internal/store"
	"StockWatch/internal/strategy"
)

// Callbacks is the outbound boundary. Every field is optional; the pipeline
// never panics across this boundary.
type Callbacks struct {
	OnQuote           func(model.Quote)
	OnHistoricalReady func()
	OnError           func(kind model.ErrorKind, message string)
}

// Pipeline is the composition root: it owns the scheduler and the store and
// implements the scheduler's completion handler.
type Pipeline struct {
	sched  *scheduler.Scheduler
	store  *store.WindowedStore
	source feed.Source
	cb     Callbacks
}

// New builds a pipeline polling the given realtime source at the given
// interval. Call Close to release the scheduler.
func New(getter scheduler.Getter, source feed.Source, interval time.Duration, st *store.WindowedStore, cb Callbacks) *Pipeline {
	if st == nil {
		st = store.New(0, 0)
	}
	if !source.Valid() {
		source = feed.SourceSina
	}
	p := &Pipeline{store: st, source: source, cb: cb}
	p.sched = scheduler.New(getter, p, source, interval)
	return p
}

// StartPolling begins realtime polling for a symbol. Validation failures are
// returned and also reported through OnError.
func (p *Pipeline) StartPolling(symbol string) error {
	if err := p.sched.StartPolling(symbol); err != nil {
		p.reportError(err)
		return err
	}
	return nil
}

// RequestHistorical issues one historical daily-bar fetch, superseding any
// active polling.
func (p *Pipeline) RequestHistorical(symbol string, start, end time.Time) error {
	if err := p.sched.RequestHistorical(symbol, start, end); err != nil {
		p.reportError(err)
		return err
	}
	return nil
}

// Stop halts polling and cancels any in-flight fetch.
func (p *Pipeline) Stop() { p.sched.Stop() }

// Close stops the pipeline and releases the scheduler.
func (p *Pipeline) Close() { p.sched.Close() }

// SwitchViewMode changes the store's active presentation.
func (p *Pipeline) SwitchViewMode(mode store.ViewMode) { p.store.SwitchMode(mode) }

// View returns the active projection.
func (p *Pipeline) View() store.View { return p.store.Snapshot() }

// Store exposes the windowed store for read access.
func (p *Pipeline) Store() *store.WindowedStore { return p.store }

// MovingAverage computes the rolling mean over the held historical bars.
func (p *Pipeline) MovingAverage(period int) ([]float64, error) {
	return calculator.CalculateMA(p.store.Bars(), period)
}

// RSI computes the relative strength index over the held historical bars.
func (p *Pipeline) RSI(period int) ([]float64, error) {
	return calculator.CalculateRSI(p.store.Bars(), period)
}

// MACD computes the MACD series over the held historical bars.
func (p *Pipeline) MACD() (*calculator.MACD, error) {
	return calculator.CalculateMACD(p.store.Bars())
}

// MACrossSignals evaluates the moving-average cross strategy over the held
// historical bars.
func (p *Pipeline) MACrossSignals(shortPeriod, longPeriod int) ([]strategy.Signal, error) {
	return strategy.MACross(p.store.Bars(), shortPeriod, longPeriod)
}

// MACDSignals evaluates the MACD cross strategy over the held historical bars.
func (p *Pipeline) MACDSignals() ([]strategy.Signal, error) {
	return strategy.MACDCross(p.store.Bars())
}

// RSISignals evaluates the RSI threshold strategy over the held historical bars.
func (p *Pipeline) RSISignals(period int, overbought, oversold float64) ([]strategy.Signal, error) {
	return strategy.RSIThreshold(p.store.Bars(), period, overbought, oversold)
}

// HandleQuotePayload parses one realtime payload in the source's dialect and
// feeds the store. A malformed payload aborts the cycle; no quote is emitted.
func (p *Pipeline) HandleQuotePayload(_ string, payload []byte) {
	q, err := feed.ParseQuote(p.source, payload)
	if err != nil {
		p.reportError(err)
		return
	}
	p.store.AppendQuote(*q)
	if p.cb.OnQuote != nil {
		p.cb.OnQuote(*q)
	}
}

// HandleHistoricalPayload parses one historical payload, reports skipped
// records, and replaces the store's bar sequence. OnHistoricalReady fires as
// long as the envelope itself was well-formed, even if records were skipped.
func (p *Pipeline) HandleHistoricalPayload(symbol string, payload []byte) {
	res, err := feed.ParseHistorical(symbol, payload)
	if err != nil {
		p.reportError(err)
		return
	}
	for _, re := range res.RecordErrors {
		p.reportError(re)
	}
	p.store.LoadBars(res.Bars, res.Name)
	if p.cb.OnHistoricalReady != nil {
		p.cb.OnHistoricalReady()
	}
}

// HandleError forwards a fetch failure to the consumer.
func (p *Pipeline) HandleError(err *model.FeedError) { p.reportError(err) }

func (p *Pipeline) reportError(err error) {
	fe := model.AsFeedError(err)
	log.Printf("[WARN] %s: %s", fe.Kind, fe.Message)
	if p.cb.OnError != nil {
		p.cb.OnError(fe.Kind, fe.Message)
	}
}
