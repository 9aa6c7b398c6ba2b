package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in the smallest unit of its currency (e.g. 1 VND, 1 US cent).
type Money int64

var hundred = decimal.NewFromInt(100)

var (
	ErrInvalidAmount   = errors.New("invalid money amount")
	ErrFractionalMinor = errors.New("amount has more fractional digits than the currency allows")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
)

// Currency describes how amounts are written at the presentation boundary.
type Currency struct {
	Code      string
	Symbol    string
	Exponent  int32
	Grouping  string
	Decimal   string
	SymbolEnd bool
}

var (
	VND = Currency{Code: "VND", Symbol: "₫", Exponent: 0, Grouping: ".", Decimal: ",", SymbolEnd: true}
	USD = Currency{Code: "USD", Symbol: "$", Exponent: 2, Grouping: ",", Decimal: "."}
)

// LookupCurrency returns the currency for an ISO code, falling back to VND.
func LookupCurrency(code string) Currency {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case USD.Code:
		return USD
	default:
		return VND
	}
}

func (m Money) Int64() int64 {
	return int64(m)
}

// Times multiplies by a quantity.
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

// Min returns the smallest of the given amounts.
func Min(first Money, rest ...Money) Money {
	out := first
	for _, m := range rest {
		if m < out {
			out = m
		}
	}

	return out
}

// NonNegative floors an amount at zero.
func NonNegative(m Money) Money {
	if m < 0 {
		return 0
	}

	return m
}

// PercentOf returns floor(m * pct / 100) using exact decimal arithmetic.
func PercentOf(m Money, pct decimal.Decimal) Money {
	if m <= 0 || pct.Sign() <= 0 {
		return 0
	}

	return Money(decimal.NewFromInt(int64(m)).Mul(pct).Div(hundred).Floor().IntPart())
}

// ApplyPercentOff returns m reduced by floor(m * pct / 100), never below zero.
func ApplyPercentOff(m Money, pct decimal.Decimal) Money {
	if pct.GreaterThanOrEqual(hundred) {
		return 0
	}

	return NonNegative(m - PercentOf(m, pct))
}

// Format renders the amount for display, e.g. "490.000 ₫" or "$12.50".
func (c Currency) Format(m Money) string {
	negative := m < 0
	abs := int64(m)
	if negative {
		abs = -abs
	}

	fixed := decimal.New(abs, -c.Exponent).StringFixed(c.Exponent)

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(c.Grouping)
		}
		b.WriteRune(r)
	}

	amount := b.String()
	if frac != "" {
		amount += c.Decimal + frac
	}

	if c.SymbolEnd {
		amount = amount + " " + c.Symbol
	} else {
		amount = c.Symbol + amount
	}

	if negative {
		return "-" + amount
	}

	return amount
}

// Parse reads a display string written in this currency's conventions back into minor units.
func (c Currency) Parse(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.ReplaceAll(raw, c.Symbol, ""))
	raw = strings.TrimSpace(strings.TrimSuffix(strings.ToUpper(raw), c.Code))
	if raw == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if c.Grouping != "" {
		raw = strings.ReplaceAll(raw, c.Grouping, "")
	}
	if c.Decimal != "" && c.Decimal != "." {
		raw = strings.ReplaceAll(raw, c.Decimal, ".")
	}
	raw = strings.ReplaceAll(raw, " ", "")

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if d.Sign() < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNegativeAmount, s)
	}

	minor := d.Shift(c.Exponent)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q", ErrFractionalMinor, s)
	}

	return Money(minor.IntPart()), nil
}
