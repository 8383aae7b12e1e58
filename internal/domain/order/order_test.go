package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
)

func mustLine(t *testing.T, productID uuid.UUID, qty, price, discount string) OrderLine {
	t.Helper()
	line, err := NewOrderLine(
		productID,
		decimal.RequireFromString(qty),
		decimal.RequireFromString(price),
		decimal.RequireFromString(discount),
		valueobject.USD,
	)
	require.NoError(t, err)
	return *line
}

func TestNewOrderLineDerivesTotal(t *testing.T) {
	line := mustLine(t, uuid.New(), "3", "10.00", "0")
	assert.True(t, line.LineTotal.Equal(decimal.NewFromInt(30)))

	discounted := mustLine(t, uuid.New(), "2", "100.00", "25")
	assert.True(t, discounted.LineTotal.Equal(decimal.NewFromInt(150)))

	free := mustLine(t, uuid.New(), "5", "10.00", "100")
	assert.True(t, free.LineTotal.IsZero())
}

func TestNewOrderLineValidation(t *testing.T) {
	_, err := NewOrderLine(uuid.Nil, decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, valueobject.USD)
	assert.Error(t, err)

	_, err = NewOrderLine(uuid.New(), decimal.Zero, decimal.NewFromInt(1), decimal.Zero, valueobject.USD)
	assert.Error(t, err)

	_, err = NewOrderLine(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(-1), decimal.Zero, valueobject.USD)
	assert.Error(t, err)

	_, err = NewOrderLine(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(101), valueobject.USD)
	assert.Error(t, err)

	_, err = NewOrderLine(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(-1), valueobject.USD)
	assert.Error(t, err)
}

func TestNewOrderTotalsActiveLines(t *testing.T) {
	lines := []OrderLine{
		mustLine(t, uuid.New(), "1", "10.00", "0"),
		mustLine(t, uuid.New(), "2", "5.00", "50"),
	}

	o, err := NewOrder(uuid.New(), time.Now(), valueobject.USD, lines)
	require.NoError(t, err)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, OrderStatusActive, o.Status)
	for _, line := range o.Lines {
		assert.Equal(t, o.ID, line.OrderID)
	}

	_, err = NewOrder(uuid.New(), time.Now(), valueobject.USD, nil)
	assert.Error(t, err)
}

func TestOrderReplaceLines(t *testing.T) {
	original := mustLine(t, uuid.New(), "1", "10.00", "0")
	o, err := NewOrder(uuid.New(), time.Now(), valueobject.USD, []OrderLine{original})
	require.NoError(t, err)

	replacement := mustLine(t, uuid.New(), "3", "20.00", "0")
	require.NoError(t, o.ReplaceLines([]OrderLine{replacement}))

	// old line kept but deleted, new line active
	assert.Len(t, o.Lines, 2)
	assert.Len(t, o.ActiveLines(), 1)
	assert.Equal(t, replacement.ProductID, o.ActiveLines()[0].ProductID)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(60)))

	assert.Error(t, o.ReplaceLines(nil))
}

func TestOrderMarkDeleted(t *testing.T) {
	o, err := NewOrder(uuid.New(), time.Now(), valueobject.USD, []OrderLine{
		mustLine(t, uuid.New(), "1", "10.00", "0"),
	})
	require.NoError(t, err)

	require.NoError(t, o.MarkDeleted())
	assert.Equal(t, OrderStatusDeleted, o.Status)
	assert.False(t, o.IsActive())

	// lines keep their status for the stock reversal
	assert.Len(t, o.ActiveLines(), 1)

	assert.Error(t, o.MarkDeleted())
	assert.Error(t, o.ReplaceLines([]OrderLine{mustLine(t, uuid.New(), "1", "1.00", "0")}))
}
