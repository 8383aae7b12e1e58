package stock

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockRecord(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	warehouseID := uuid.New()

	record, err := NewStockRecord(tenantID, productID, &warehouseID, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, tenantID, record.TenantID)
	assert.Equal(t, productID, record.ProductID)
	assert.Equal(t, warehouseID, *record.WarehouseID)
	assert.True(t, record.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, RecordStatusActive, record.Status)
	assert.Len(t, record.GetDomainEvents(), 1)
}

func TestNewStockRecordUnassigned(t *testing.T) {
	record, err := NewStockRecord(uuid.New(), uuid.New(), nil, decimal.Zero)
	require.NoError(t, err)
	assert.Nil(t, record.WarehouseID)
}

func TestNewStockRecordValidation(t *testing.T) {
	_, err := NewStockRecord(uuid.New(), uuid.Nil, nil, decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = NewStockRecord(uuid.New(), uuid.New(), nil, decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestStockRecordRemoveQuantity(t *testing.T) {
	record, _ := NewStockRecord(uuid.New(), uuid.New(), nil, decimal.NewFromInt(5))
	record.ClearDomainEvents()

	require.NoError(t, record.RemoveQuantity(decimal.NewFromInt(3)))
	assert.True(t, record.Quantity.Equal(decimal.NewFromInt(2)))

	// quantity can never go below zero
	err := record.RemoveQuantity(decimal.NewFromInt(3))
	require.Error(t, err)

	var shortage *InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	assert.True(t, shortage.Required.Equal(decimal.NewFromInt(3)))
	assert.True(t, shortage.Available.Equal(decimal.NewFromInt(2)))
	assert.True(t, record.Quantity.Equal(decimal.NewFromInt(2)))
}

func TestStockRecordAddQuantity(t *testing.T) {
	record, _ := NewStockRecord(uuid.New(), uuid.New(), nil, decimal.NewFromInt(1))

	require.NoError(t, record.AddQuantity(decimal.NewFromInt(4)))
	assert.True(t, record.Quantity.Equal(decimal.NewFromInt(5)))

	assert.Error(t, record.AddQuantity(decimal.Zero))
	assert.Error(t, record.AddQuantity(decimal.NewFromInt(-1)))
}

func TestStockRecordAssignWarehouse(t *testing.T) {
	record, _ := NewStockRecord(uuid.New(), uuid.New(), nil, decimal.NewFromInt(1))
	warehouseID := uuid.New()

	require.NoError(t, record.AssignWarehouse(warehouseID))
	assert.Equal(t, warehouseID, *record.WarehouseID)

	// already assigned
	assert.Error(t, record.AssignWarehouse(uuid.New()))
}

func TestStockRecordRemove(t *testing.T) {
	record, _ := NewStockRecord(uuid.New(), uuid.New(), nil, decimal.Zero)

	require.NoError(t, record.Remove())
	assert.Equal(t, RecordStatusRemoved, record.Status)
	assert.False(t, record.IsActive())

	assert.Error(t, record.Remove())
}
