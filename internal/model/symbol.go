package model

import "strings"

// symbolPrefixes are the supported exchange prefixes: Shanghai, Shenzhen, Beijing.
var symbolPrefixes = []string{"sh", "sz", "bj"}

// ValidateSymbol checks that a stock code is an exchange prefix followed by
// exactly six ASCII digits, e.g. "sh600000" or "sz000001".
func ValidateSymbol(symbol string) error {
	var code string
	matched := false
	for _, p := range symbolPrefixes {
		if strings.HasPrefix(symbol, p) {
			code = symbol[len(p):]
			matched = true
			break
		}
	}
	if !matched {
		return NewFeedError(ErrInvalidSymbol, "symbol %q must start with one of sh, sz, bj", symbol)
	}
	if len(code) != 6 {
		return NewFeedError(ErrInvalidSymbol, "symbol %q must have a 6-digit code", symbol)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return NewFeedError(ErrInvalidSymbol, "symbol %q must have a 6-digit code", symbol)
		}
	}
	return nil
}
