package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// StockRecordRepository defines the interface for stock record persistence
type StockRecordRepository interface {
	// FindByID finds a stock record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// FindByIDForTenant finds a stock record by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockRecord, error)

	// FindByWarehouseAndProduct finds the active record for a warehouse-product
	// combination. A nil warehouseID matches unassigned stock.
	FindByWarehouseAndProduct(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID) (*StockRecord, error)

	// FindByWarehouse finds all active records in a warehouse
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]StockRecord, error)

	// FindByProduct finds all active records for a product across warehouses
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]StockRecord, error)

	// FindAllForTenant finds all active records for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockRecord, error)

	// CountForTenant counts active records matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// SumQuantityByProduct sums the on-hand quantity for a product across all
	// warehouses, including unassigned stock
	SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error)

	// Save creates or updates a stock record
	Save(ctx context.Context, record *StockRecord) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, record *StockRecord) error

	// AdjustQuantity applies a signed delta to the record's quantity in a
	// single conditional update. The update only commits when the resulting
	// quantity stays non-negative. Returns StockRecordMissingError when no
	// record exists and InsufficientStockError when the delta would drive the
	// quantity below zero.
	AdjustQuantity(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID, delta decimal.Decimal) error

	// Delete deletes a stock record
	Delete(ctx context.Context, id uuid.UUID) error
}
