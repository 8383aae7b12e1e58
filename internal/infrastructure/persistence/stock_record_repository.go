package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/stock"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockRecord, error) {
	var record stock.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByIDForTenant finds a stock record by ID within a tenant
func (r *GormStockRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*stock.StockRecord, error) {
	var record stock.StockRecord
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByWarehouseAndProduct finds the active record for a warehouse-product
// combination. A nil warehouseID matches unassigned stock.
func (r *GormStockRecordRepository) FindByWarehouseAndProduct(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID) (*stock.StockRecord, error) {
	var record stock.StockRecord
	query := r.scopeWhere(
		r.db.WithContext(ctx).Where("tenant_id = ? AND product_id = ? AND status = ?", tenantID, productID, stock.RecordStatusActive),
		warehouseID,
	)
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByWarehouse finds all active records in a warehouse
func (r *GormStockRecordRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&stock.StockRecord{}).
			Where("tenant_id = ? AND warehouse_id = ? AND status = ?", tenantID, warehouseID, stock.RecordStatusActive),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByProduct finds all active records for a product across warehouses
func (r *GormStockRecordRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND status = ?", tenantID, productID, stock.RecordStatusActive).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAllForTenant finds all active records for a tenant
func (r *GormStockRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&stock.StockRecord{}).
			Where("tenant_id = ? AND status = ?", tenantID, stock.RecordStatusActive),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountForTenant counts active records matching the filter
func (r *GormStockRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&stock.StockRecord{}).
			Where("tenant_id = ? AND status = ?", tenantID, stock.RecordStatusActive),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumQuantityByProduct sums the on-hand quantity for a product across all
// warehouses, including unassigned stock
func (r *GormStockRecordRepository) SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&stock.StockRecord{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND product_id = ? AND status = ?", tenantID, productID, stock.RecordStatusActive).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a stock record
func (r *GormStockRecordRepository) Save(ctx context.Context, record *stock.StockRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockRecordRepository) SaveWithLock(ctx context.Context, record *stock.StockRecord) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":     record.Quantity,
			"warehouse_id": record.WarehouseID,
			"status":       record.Status,
			"version":      record.Version,
			"updated_at":   record.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Stock record was modified by another transaction")
	}
	return nil
}

// AdjustQuantity applies a signed delta in one conditional update. The
// WHERE clause rejects the update when the resulting quantity would be
// negative, so concurrent adjustments can never oversell.
func (r *GormStockRecordRepository) AdjustQuantity(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID, delta decimal.Decimal) error {
	query := r.scopeWhere(
		r.db.WithContext(ctx).Model(&stock.StockRecord{}).
			Where("tenant_id = ? AND product_id = ? AND status = ?", tenantID, productID, stock.RecordStatusActive),
		warehouseID,
	)

	result := query.
		Where("quantity + ? >= 0", delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// zero rows affected: either no record or the delta would go negative
	record, err := r.FindByWarehouseAndProduct(ctx, tenantID, warehouseID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return stock.NewStockRecordMissingError(productID, warehouseID)
		}
		return err
	}
	return stock.NewInsufficientStockError(productID, delta.Neg(), record.Quantity)
}

// Delete deletes a stock record
func (r *GormStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&stock.StockRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// scopeWhere narrows a query to one stock scope; nil means unassigned stock
func (r *GormStockRecordRepository) scopeWhere(query *gorm.DB, warehouseID *uuid.UUID) *gorm.DB {
	if warehouseID == nil {
		return query.Where("warehouse_id IS NULL")
	}
	return query.Where("warehouse_id = ?", *warehouseID)
}

// applyFilter applies filter options to the query
func (r *GormStockRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "unassigned":
			if value == true {
				query = query.Where("warehouse_id IS NULL")
			}
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}

	return query
}
