package feed

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	"StockWatch/internal/model"
)

// decodePayload converts an upstream body to a UTF-8 string. Both Sina and
// Tencent serve GBK; payloads that are already valid UTF-8 (proxies, tests)
// pass through unchanged.
func decodePayload(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return "", model.WrapFeedError(model.ErrMalformedQuote, err, "decode GBK payload")
	}
	return string(decoded), nil
}

// extractQuoted returns the payload enclosed in the first pair of double
// quotes in the response body.
func extractQuoted(body string) (string, error) {
	start := strings.IndexByte(body, '"')
	if start < 0 {
		return "", model.NewFeedError(model.ErrMalformedQuote, "payload has no quoted section")
	}
	end := strings.IndexByte(body[start+1:], '"')
	if end < 0 {
		return "", model.NewFeedError(model.ErrMalformedQuote, "payload quoted section is unterminated")
	}
	return body[start+1 : start+1+end], nil
}

// parseField decodes one numeric field. Fields that fail to decode yield
// zero, matching the upstream format's loose numeric convention.
func parseField(fields []string, idx int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
	if err != nil {
		return 0
	}
	return v
}
