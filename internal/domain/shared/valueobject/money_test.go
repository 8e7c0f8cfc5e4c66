package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), UYU)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
		assert.Equal(t, UYU, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(1), Currency(""))
		require.Error(t, err)
	})

	t.Run("UYU helper defaults the currency", func(t *testing.T) {
		m := NewMoneyUYU(decimal.NewFromFloat(22.00))
		assert.Equal(t, UYU, m.Currency())
	})

	t.Run("parses string amounts", func(t *testing.T) {
		m, err := NewMoneyFromString("1220.00", UYU)
		require.NoError(t, err)
		assert.Equal(t, "1220.00", m.StringFixed(2))

		_, err = NewMoneyFromString("not-a-number", UYU)
		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyUYU(decimal.NewFromFloat(100.00))
		b := NewMoneyUYU(decimal.NewFromFloat(22.00))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(122.00)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyUYU(decimal.NewFromFloat(100.00))
		b, err := NewMoney(decimal.NewFromFloat(100.00), USD)
		require.NoError(t, err)

		_, err = a.Add(b)
		require.Error(t, err)

		_, err = a.Subtract(b)
		require.Error(t, err)
	})

	t.Run("subtracts same currency", func(t *testing.T) {
		a := NewMoneyUYU(decimal.NewFromFloat(100.00))
		b := NewMoneyUYU(decimal.NewFromFloat(30.00))

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(70.00)))
		assert.True(t, diff.IsPositive())
	})

	t.Run("accumulates from zero", func(t *testing.T) {
		total := ZeroUYU()
		assert.True(t, total.IsZero())

		total = total.MustAdd(NewMoneyUYU(decimal.NewFromFloat(500.00)))
		total = total.MustAdd(NewMoneyUYU(decimal.NewFromFloat(720.00)))
		assert.True(t, total.Equals(NewMoneyUYU(decimal.NewFromFloat(1220.00))))
	})
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyUYU(decimal.NewFromFloat(122.00))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}
