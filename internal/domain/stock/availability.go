package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// Demand is a requested quantity of a product
type Demand struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// AvailabilityChecker verifies that stock can cover a set of demands before
// any adjustment runs. It never mutates stock.
type AvailabilityChecker struct {
	records StockRecordRepository
}

// NewAvailabilityChecker creates an availability checker
func NewAvailabilityChecker(records StockRecordRepository) *AvailabilityChecker {
	return &AvailabilityChecker{records: records}
}

// CheckCreate verifies every demand against the current stock level.
// A missing stock record counts as zero available. The check fails fast on
// the first shortage.
func (c *AvailabilityChecker) CheckCreate(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, demands []Demand) error {
	for _, demand := range demands {
		available, err := c.availableQuantity(ctx, tenantID, warehouseID, demand.ProductID)
		if err != nil {
			return err
		}
		if available.LessThan(demand.Quantity) {
			return NewInsufficientStockError(demand.ProductID, demand.Quantity, available)
		}
	}
	return nil
}

// CheckUpdate verifies net quantity deltas against current stock levels.
// Only positive deltas consume stock, so negative and zero deltas pass
// without a lookup.
func (c *AvailabilityChecker) CheckUpdate(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, deltas []Demand) error {
	for _, delta := range deltas {
		if delta.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		available, err := c.availableQuantity(ctx, tenantID, warehouseID, delta.ProductID)
		if err != nil {
			return err
		}
		if available.LessThan(delta.Quantity) {
			return NewInsufficientStockError(delta.ProductID, delta.Quantity, available)
		}
	}
	return nil
}

func (c *AvailabilityChecker) availableQuantity(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID) (decimal.Decimal, error) {
	record, err := c.records.FindByWarehouseAndProduct(ctx, tenantID, warehouseID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return record.Quantity, nil
}
