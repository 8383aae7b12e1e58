package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, USD, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestMoneyAddSubtract(t *testing.T) {
	a, _ := NewMoneyFromString("10.50", USD)
	b, _ := NewMoneyFromString("4.25", USD)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "14.75 USD", sum.String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "6.25 USD", diff.String())

	eur := Zero(EUR)
	_, err = a.Add(eur)
	assert.Error(t, err)
	_, err = a.Subtract(eur)
	assert.Error(t, err)
}

func TestMoneyApplyDiscount(t *testing.T) {
	m, _ := NewMoneyFromString("200.00", USD)

	discounted := m.ApplyDiscount(decimal.NewFromInt(25))
	assert.True(t, discounted.Amount().Equal(decimal.NewFromInt(150)))

	// 0% discount leaves the amount unchanged
	same := m.ApplyDiscount(decimal.Zero)
	assert.True(t, same.Equals(m))

	// 100% discount zeroes the amount
	free := m.ApplyDiscount(decimal.NewFromInt(100))
	assert.True(t, free.IsZero())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, _ := NewMoneyFromString("99.99", EUR)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("12.34"))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.34)))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
