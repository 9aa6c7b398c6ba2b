package money_test

import (
	"testing"

	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name   string
		amount money.Money
		pct    decimal.Decimal
		want   money.Money
	}{
		{"Ten percent", 500_000, decimal.NewFromInt(10), 50_000},
		{"Floors fractional result", 999, decimal.NewFromInt(15), 149},
		{"Fractional percent", 100_000, decimal.RequireFromString("12.5"), 12_500},
		{"Zero amount", 0, decimal.NewFromInt(20), 0},
		{"Zero percent", 100_000, decimal.Zero, 0},
		{"Negative percent", 100_000, decimal.NewFromInt(-5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.PercentOf(tt.amount, tt.pct))
		})
	}
}

func TestApplyPercentOff(t *testing.T) {
	assert.Equal(t, money.Money(392_000), money.ApplyPercentOff(490_000, decimal.NewFromInt(20)))
	assert.Equal(t, money.Money(490_000), money.ApplyPercentOff(490_000, decimal.Zero))
	assert.Equal(t, money.Money(0), money.ApplyPercentOff(490_000, decimal.NewFromInt(100)))
	assert.Equal(t, money.Money(0), money.ApplyPercentOff(490_000, decimal.NewFromInt(150)))
}

func TestMinAndNonNegative(t *testing.T) {
	assert.Equal(t, money.Money(40_000), money.Min(50_000, 40_000, 100_000))
	assert.Equal(t, money.Money(7), money.Min(7))
	assert.Equal(t, money.Money(0), money.NonNegative(-10))
	assert.Equal(t, money.Money(10), money.NonNegative(10))
	assert.Equal(t, money.Money(300), money.Money(100).Times(3))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "490.000 ₫", money.VND.Format(490_000))
	assert.Equal(t, "1.250.000 ₫", money.VND.Format(1_250_000))
	assert.Equal(t, "0 ₫", money.VND.Format(0))
	assert.Equal(t, "-15.000 ₫", money.VND.Format(-15_000))
	assert.Equal(t, "$12.50", money.USD.Format(1250))
	assert.Equal(t, "$1,234,567.05", money.USD.Format(123456705))
	assert.Equal(t, "$0.07", money.USD.Format(7))
}

func TestParse(t *testing.T) {
	t.Run("Success - VND with grouping and symbol", func(t *testing.T) {
		m, err := money.VND.Parse("490.000 ₫")
		require.NoError(t, err)
		assert.Equal(t, money.Money(490_000), m)
	})

	t.Run("Success - VND with code suffix", func(t *testing.T) {
		m, err := money.VND.Parse("1.250.000 VND")
		require.NoError(t, err)
		assert.Equal(t, money.Money(1_250_000), m)
	})

	t.Run("Success - USD with decimals", func(t *testing.T) {
		m, err := money.USD.Parse("$1,250.50")
		require.NoError(t, err)
		assert.Equal(t, money.Money(125_050), m)
	})

	t.Run("Success - Round trip", func(t *testing.T) {
		for _, amount := range []money.Money{0, 1, 999, 392_000, 12_345_678} {
			parsed, err := money.VND.Parse(money.VND.Format(amount))
			require.NoError(t, err)
			assert.Equal(t, amount, parsed)
		}
	})

	t.Run("Failure - Too many fractional digits", func(t *testing.T) {
		_, err := money.USD.Parse("12.345")
		assert.ErrorIs(t, err, money.ErrFractionalMinor)
	})

	t.Run("Failure - Not a number", func(t *testing.T) {
		_, err := money.VND.Parse("abc ₫")
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})

	t.Run("Failure - Empty", func(t *testing.T) {
		_, err := money.VND.Parse(" ₫ ")
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})

	t.Run("Failure - Negative", func(t *testing.T) {
		_, err := money.USD.Parse("-1.00")
		assert.ErrorIs(t, err, money.ErrNegativeAmount)
	})
}

func TestLookupCurrency(t *testing.T) {
	assert.Equal(t, money.USD, money.LookupCurrency("usd"))
	assert.Equal(t, money.VND, money.LookupCurrency("VND"))
	assert.Equal(t, money.VND, money.LookupCurrency(""))
}
