package entity

import (
	"fmt"
	"strings"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
)

// Currency is an ISO 4217 currency code supported by the ledger.
type Currency string

// Supported currencies. INR is the default for users that do not state a
// preference.
const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// DefaultCurrency is applied when a request omits the currency.
const DefaultCurrency = CurrencyINR

var supportedCurrencies = map[Currency]struct{}{
	CurrencyINR: {},
	CurrencyUSD: {},
	CurrencyEUR: {},
}

// ParseCurrency normalizes and validates a currency code. An empty input
// yields the default currency rather than an error.
func ParseCurrency(code string) (Currency, error) {
	if strings.TrimSpace(code) == "" {
		return DefaultCurrency, nil
	}
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := supportedCurrencies[c]; !ok {
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidCurrency, code)
	}
	return c, nil
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}
