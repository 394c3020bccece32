// Package feed knows the upstream quote endpoints and their wire formats:
// the Sina comma-delimited and Tencent tilde-delimited realtime snapshots,
// and the Tencent qfqday daily-bar JSON.
package feed

import (
	"fmt"
	"time"

	"StockWatch/internal/model"
)

// Source selects which realtime upstream a request goes to. The payload
// dialect is fixed by the source, never sniffed from the response.
type Source string

const (
	SourceSina    Source = "sina"
	SourceTencent Source = "tencent"
)

// Valid reports whether s names a known realtime source.
func (s Source) Valid() bool {
	return s == SourceSina || s == SourceTencent
}

// QuoteURL returns the realtime snapshot endpoint for a symbol.
func QuoteURL(source Source, symbol string) string {
	if source == SourceTencent {
		return fmt.Sprintf("http://qt.gtimg.cn/q=%s", symbol)
	}
	return fmt.Sprintf("http://hq.sinajs.cn/list=%s", symbol)
}

// QuoteHeaders returns the fixed headers the realtime endpoint requires.
func QuoteHeaders(source Source) map[string]string {
	if source == SourceSina {
		// Sina rejects requests without a finance.sina.com.cn referer.
		return map[string]string{"Referer": "http://finance.sina.com.cn/"}
	}
	return nil
}

// HistoricalURL returns the Tencent forward-adjusted daily kline endpoint for
// a symbol and date range.
func HistoricalURL(symbol string, start, end time.Time) string {
	return fmt.Sprintf(
		"http://web.ifzq.gtimg.cn/appstock/app/fqkline/get?param=%s,day,%s,%s,100,qfq",
		symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// ParseQuote decodes one realtime payload using the source's dialect.
func ParseQuote(source Source, data []byte) (*model.Quote, error) {
	if source == SourceTencent {
		return ParseTencentQuote(data)
	}
	return ParseSinaQuote(data)
}
