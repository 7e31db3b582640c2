package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "whole number", input: "500", expected: "500"},
		{name: "one decimal place", input: "10.5", expected: "10.5"},
		{name: "two decimal places", input: "10.55", expected: "10.55"},
		{name: "leading whitespace", input: "  25.00", expected: "25"},
		{name: "empty string", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "zero with decimals", input: "0.00", wantErr: true},
		{name: "negative", input: "-10.00", wantErr: true},
		{name: "three decimal places", input: "10.555", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "multiple decimal points", input: "10.5.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseAmount(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestToSubunits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected int64
	}{
		{name: "whole rupees", amount: "500", expected: 50000},
		{name: "with paise", amount: "10.15", expected: 1015},
		{name: "single paisa", amount: "0.01", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.expected, ToSubunits(d))
		})
	}
}

func TestFromSubunits(t *testing.T) {
	assert.Equal(t, "10.15", FormatAmount(FromSubunits(1015)))
	assert.Equal(t, "500.00", FormatAmount(FromSubunits(50000)))
	assert.Equal(t, "0.01", FormatAmount(FromSubunits(1)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "10.00", FormatAmount(decimal.RequireFromString("10")))
	assert.Equal(t, "10.10", FormatAmount(decimal.RequireFromString("10.1")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
