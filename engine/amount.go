package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Hour quantity with exact decimal arithmetic
// =============================================================================

// Amount is a duration expressed in hours with exact decimal arithmetic.
// Contract fractions like one third of a 40-hour week do not round-trip
// through float64 cleanly, so required-hours derivation stays decimal
// until the final conversion to whole minutes.
type Amount struct {
	Hours decimal.Decimal
}

func NewAmountHours(hours float64) Amount {
	return Amount{Hours: decimal.NewFromFloat(hours)}
}

func NewAmountFromMinutes(minutes int) Amount {
	return Amount{Hours: decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))}
}

func (a Amount) Add(b Amount) Amount              { return Amount{Hours: a.Hours.Add(b.Hours)} }
func (a Amount) Sub(b Amount) Amount              { return Amount{Hours: a.Hours.Sub(b.Hours)} }
func (a Amount) Mul(s decimal.Decimal) Amount     { return Amount{Hours: a.Hours.Mul(s)} }
func (a Amount) Div(s decimal.Decimal) Amount     { return Amount{Hours: a.Hours.Div(s)} }
func (a Amount) IsZero() bool                     { return a.Hours.IsZero() }
func (a Amount) IsNegative() bool                 { return a.Hours.IsNegative() }
func (a Amount) GreaterThan(b Amount) bool        { return a.Hours.GreaterThan(b.Hours) }

// Minutes converts to whole minutes, rounding to the nearest minute.
func (a Amount) Minutes() int {
	return int(a.Hours.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}

func (a Amount) String() string { return a.Hours.Round(2).String() + "h" }

// MustParseDecimal parses a decimal literal, returning zero on failure.
// Intended for compiled-in constants such as employment fractions.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
