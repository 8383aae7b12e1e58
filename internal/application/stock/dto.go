package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/stock"
)

// StockEntryRequest registers stock for a product, optionally in a warehouse
type StockEntryRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID *uuid.UUID      `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// StockRecordDTO is the outward representation of a stock record
type StockRecordDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID *uuid.UUID      `json:"warehouse_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToStockRecordDTO converts a stock record to its DTO
func ToStockRecordDTO(record *stock.StockRecord) *StockRecordDTO {
	return &StockRecordDTO{
		ID:          record.ID,
		ProductID:   record.ProductID,
		WarehouseID: record.WarehouseID,
		Quantity:    record.Quantity,
		Status:      string(record.Status),
		UpdatedAt:   record.UpdatedAt,
	}
}

// ToStockRecordDTOs converts a slice of stock records
func ToStockRecordDTOs(records []stock.StockRecord) []StockRecordDTO {
	dtos := make([]StockRecordDTO, len(records))
	for i := range records {
		dtos[i] = *ToStockRecordDTO(&records[i])
	}
	return dtos
}

// ProductStockSummaryDTO aggregates a product's stock across warehouses
type ProductStockSummaryDTO struct {
	ProductID     uuid.UUID        `json:"product_id"`
	TotalQuantity decimal.Decimal  `json:"total_quantity"`
	Records       []StockRecordDTO `json:"records"`
}

// AvailabilityDTO reports the available quantity for one product
type AvailabilityDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID *uuid.UUID      `json:"warehouse_id,omitempty"`
	Available   decimal.Decimal `json:"available"`
}
