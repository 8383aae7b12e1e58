package stock

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// Event types for the stock domain
const (
	EventTypeStockRecordCreated = "stock.record_created"
	EventTypeStockAdjusted      = "stock.adjusted"
	EventTypeStockShortage      = "stock.shortage"
)

const aggregateTypeStockRecord = "StockRecord"

// StockRecordCreatedEvent is emitted when a new stock record is created
type StockRecordCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID *uuid.UUID      `json:"warehouse_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NewStockRecordCreatedEvent creates a stock record created event
func NewStockRecordCreatedEvent(record *StockRecord) *StockRecordCreatedEvent {
	return &StockRecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRecordCreated, aggregateTypeStockRecord, record.ID, record.TenantID),
		ProductID:       record.ProductID,
		WarehouseID:     record.WarehouseID,
		Quantity:        record.Quantity,
	}
}

// StockAdjustedEvent is emitted when a stock quantity changes.
// Delta is positive for increases and negative for decreases.
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID *uuid.UUID      `json:"warehouse_id,omitempty"`
	Delta       decimal.Decimal `json:"delta"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// NewStockAdjustedEvent creates a stock adjusted event
func NewStockAdjustedEvent(record *StockRecord, delta decimal.Decimal) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, aggregateTypeStockRecord, record.ID, record.TenantID),
		ProductID:       record.ProductID,
		WarehouseID:     record.WarehouseID,
		Delta:           delta,
		NewQuantity:     record.Quantity,
	}
}

// StockShortageEvent is emitted when an availability check fails
type StockShortageEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// NewStockShortageEvent creates a stock shortage event
func NewStockShortageEvent(tenantID uuid.UUID, shortage *InsufficientStockError) *StockShortageEvent {
	return &StockShortageEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockShortage, aggregateTypeStockRecord, shortage.ProductID, tenantID),
		ProductID:       shortage.ProductID,
		Required:        shortage.Required,
		Available:       shortage.Available,
	}
}
