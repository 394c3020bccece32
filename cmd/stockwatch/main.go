package main

import (
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockWatch/internal/config"
	"StockWatch/internal/fetcher"
	"StockWatch/internal/model"
	"StockWatch/internal/pipeline"
	"StockWatch/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockWatch starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	symbol := cfg.DataSource.Symbol
	if len(os.Args) > 1 {
		symbol = os.Args[1]
	}
	if symbol == "" {
		log.Fatal("[FATAL] no symbol configured; set data_source.symbol or pass one as an argument")
	}
	log.Printf("[INFO] watching %s via %s", symbol, cfg.DataSource.Realtime)

	st := store.New(cfg.Chart.MaxSamples, cfg.Chart.VisibleBars)
	client := fetcher.New(cfg.Timeout(), cfg.Proxy)

	var p *pipeline.Pipeline
	p = pipeline.New(client, cfg.Source(), cfg.Interval(), st, pipeline.Callbacks{
		OnQuote: func(q model.Quote) {
			log.Printf("[INFO] %s %s now=%.3f open=%.3f high=%.3f low=%.3f prev=%.3f",
				q.Name, q.Timestamp.Format("15:04:05"), q.Current, q.Open, q.High, q.Low, q.PrevClose)
		},
		OnHistoricalReady: func() {
			reportHistory(p, st)
		},
		OnError: func(kind model.ErrorKind, message string) {
			log.Printf("[ERROR] %s: %s", kind, message)
		},
	})
	defer p.Close()

	if os.Getenv("FETCH_HISTORY") == "true" {
		end := time.Now()
		start := end.AddDate(0, 0, -cfg.HistoricalDays)
		if err := p.RequestHistorical(symbol, start, end); err != nil {
			log.Fatalf("[FATAL] request historical: %v", err)
		}
	} else {
		if err := p.StartPolling(symbol); err != nil {
			log.Fatalf("[FATAL] start polling: %v", err)
		}
	}

	log.Println("[INFO] StockWatch is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	p.Stop()
	log.Println("[INFO] StockWatch stopped")
}

// reportHistory logs an indicator and strategy summary over the freshly
// loaded bar sequence.
func reportHistory(p *pipeline.Pipeline, st *store.WindowedStore) {
	bars := st.Bars()
	log.Printf("[INFO] historical data ready: %s, %d bars", st.DisplayName(), len(bars))
	if len(bars) == 0 {
		return
	}

	last := bars[len(bars)-1]
	log.Printf("[INFO] last bar %s close=%.2f", last.Date.Format("2006-01-02"), last.Close)

	if ma, err := p.MovingAverage(20); err == nil {
		if v := ma[len(ma)-1]; !math.IsNaN(v) {
			log.Printf("[INFO] MA20=%.2f", v)
		}
	}
	if rsi, err := p.RSI(14); err == nil {
		if v := rsi[len(rsi)-1]; !math.IsNaN(v) {
			log.Printf("[INFO] RSI14=%.1f", v)
		}
	}

	if signals, err := p.MACrossSignals(5, 20); err == nil {
		for _, s := range signals {
			log.Printf("[INFO] signal %s %s at %.2f (%s)",
				s.Date.Format("2006-01-02"), s.Action, s.Price, s.Reason)
		}
	}
	if signals, err := p.MACDSignals(); err == nil && len(signals) > 0 {
		s := signals[len(signals)-1]
		log.Printf("[INFO] latest MACD signal: %s %s at %.2f", s.Date.Format("2006-01-02"), s.Action, s.Price)
	}
}
