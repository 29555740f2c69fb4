package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	t.Run("normalises case and whitespace", func(t *testing.T) {
		c, err := ParseCurrency(" eur ", DefaultCurrency)
		require.NoError(t, err)
		assert.Equal(t, Currency("EUR"), c)
	})

	t.Run("empty falls back", func(t *testing.T) {
		c, err := ParseCurrency("", "GBP")
		require.NoError(t, err)
		assert.Equal(t, Currency("GBP"), c)
	})

	t.Run("rejects wrong length and digits", func(t *testing.T) {
		_, err := ParseCurrency("EURO", DefaultCurrency)
		assert.Error(t, err)
		_, err = ParseCurrency("U5D", DefaultCurrency)
		assert.Error(t, err)
	})
}

func TestAmountGuards(t *testing.T) {
	assert.NoError(t, RequireNonNegative("cost", decimal.Zero))
	assert.Error(t, RequireNonNegative("cost", decimal.NewFromInt(-1)))
	assert.Error(t, RequirePositive("amount", decimal.Zero))
	assert.NoError(t, RequirePositive("amount", decimal.NewFromFloat(0.01)))
	assert.Equal(t, "10.13", RoundAmount(decimal.RequireFromString("10.125")).String())
}
