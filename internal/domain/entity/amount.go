package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
)

// MaxDecimalPlaces is the maximum scale accepted for monetary amounts.
// Two places keeps amounts convertible to the gateway's smallest currency
// unit without rounding.
const MaxDecimalPlaces = 2

// ParseAmount validates and parses a monetary amount. The amount must be a
// well-formed decimal, strictly positive, with at most two decimal places.
func ParseAmount(amount string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}

	if d.Exponent() < -MaxDecimalPlaces {
		return decimal.Zero, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	return d, nil
}

// ToSubunits converts an amount in major units to the gateway's smallest
// currency unit (e.g. rupees to paise).
func ToSubunits(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

// FromSubunits converts a smallest-unit amount back to major units.
func FromSubunits(subunits int64) decimal.Decimal {
	return decimal.NewFromInt(subunits).Shift(-2)
}

// FormatAmount renders an amount with exactly two decimal places for API
// responses.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
