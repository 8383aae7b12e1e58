package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// RecordStatus represents the lifecycle state of a stock record
type RecordStatus string

const (
	RecordStatusActive  RecordStatus = "active"
	RecordStatusRemoved RecordStatus = "removed"
)

// StockRecord tracks the on-hand quantity of a product, optionally scoped to
// a warehouse. A nil WarehouseID means stock that has not been assigned to a
// warehouse yet. At most one record exists per (tenant, warehouse, product).
type StockRecord struct {
	shared.TenantAggregateRoot
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_record_scope,priority:3"`
	WarehouseID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_stock_record_scope,priority:2"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      RecordStatus    `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates a stock record with an initial quantity
func NewStockRecord(tenantID, productID uuid.UUID, warehouseID *uuid.UUID, quantity decimal.Decimal) (*StockRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	record := &StockRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		WarehouseID:         warehouseID,
		Quantity:            quantity,
		Status:              RecordStatusActive,
	}
	record.AddDomainEvent(NewStockRecordCreatedEvent(record))

	return record, nil
}

// IsActive returns true if the record has not been removed
func (r *StockRecord) IsActive() bool {
	return r.Status == RecordStatusActive
}

// CanFulfill returns true if the on-hand quantity covers the requested quantity
func (r *StockRecord) CanFulfill(quantity decimal.Decimal) bool {
	return r.Quantity.GreaterThanOrEqual(quantity)
}

// AddQuantity increases the on-hand quantity
func (r *StockRecord) AddQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	r.Quantity = r.Quantity.Add(quantity)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewStockAdjustedEvent(r, quantity))

	return nil
}

// RemoveQuantity decreases the on-hand quantity. The quantity can never go
// below zero.
func (r *StockRecord) RemoveQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if r.Quantity.LessThan(quantity) {
		return NewInsufficientStockError(r.ProductID, quantity, r.Quantity)
	}

	r.Quantity = r.Quantity.Sub(quantity)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewStockAdjustedEvent(r, quantity.Neg()))

	return nil
}

// AssignWarehouse moves unassigned stock into a warehouse
func (r *StockRecord) AssignWarehouse(warehouseID uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if r.WarehouseID != nil {
		return shared.NewDomainError("ALREADY_ASSIGNED", "Stock record is already assigned to a warehouse")
	}

	r.WarehouseID = &warehouseID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Remove soft-deletes the stock record
func (r *StockRecord) Remove() error {
	if r.Status == RecordStatusRemoved {
		return shared.ErrInvalidState
	}

	r.Status = RecordStatusRemoved
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}
