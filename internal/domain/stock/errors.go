package stock

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InsufficientStockError is returned when an availability check or an
// adjustment would drive a stock quantity below zero.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Required  decimal.Decimal
	Available decimal.Decimal
}

// NewInsufficientStockError creates an insufficient stock error
func NewInsufficientStockError(productID uuid.UUID, required, available decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Required:  required,
		Available: available,
	}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: required %s, available %s",
		e.ProductID, e.Required, e.Available)
}

// StockRecordMissingError is returned when an adjustment targets a
// (warehouse, product) pair that has no stock record.
type StockRecordMissingError struct {
	ProductID   uuid.UUID
	WarehouseID *uuid.UUID
}

// NewStockRecordMissingError creates a stock record missing error
func NewStockRecordMissingError(productID uuid.UUID, warehouseID *uuid.UUID) *StockRecordMissingError {
	return &StockRecordMissingError{
		ProductID:   productID,
		WarehouseID: warehouseID,
	}
}

// Error implements the error interface
func (e *StockRecordMissingError) Error() string {
	if e.WarehouseID == nil {
		return fmt.Sprintf("no stock record for product %s (unassigned stock)", e.ProductID)
	}
	return fmt.Sprintf("no stock record for product %s in warehouse %s", e.ProductID, e.WarehouseID)
}

// PartialAdjustmentError reports a multi-line adjustment that failed after
// some lines were already applied. Callers running outside a transaction
// must compensate the applied lines.
type PartialAdjustmentError struct {
	Applied int
	Total   int
	Cause   error
}

// NewPartialAdjustmentError creates a partial adjustment error
func NewPartialAdjustmentError(applied, total int, cause error) *PartialAdjustmentError {
	return &PartialAdjustmentError{
		Applied: applied,
		Total:   total,
		Cause:   cause,
	}
}

// Error implements the error interface
func (e *PartialAdjustmentError) Error() string {
	return fmt.Sprintf("stock adjustment failed after %d of %d lines: %v", e.Applied, e.Total, e.Cause)
}

// Unwrap returns the underlying cause
func (e *PartialAdjustmentError) Unwrap() error {
	return e.Cause
}
