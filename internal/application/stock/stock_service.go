package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/stock"
)

// StockService handles stock entry, warehouse assignment and availability
// queries. Order-driven adjustments live in the order service.
type StockService struct {
	records stock.StockRecordRepository
	events  shared.EventPublisher
	logger  *zap.Logger
}

// NewStockService creates a stock service
func NewStockService(records stock.StockRecordRepository, events shared.EventPublisher, logger *zap.Logger) *StockService {
	return &StockService{
		records: records,
		events:  events,
		logger:  logger,
	}
}

// CreateEntry registers stock for a product. When a record already exists
// for the same (warehouse, product) scope the quantity is added to it.
func (s *StockService) CreateEntry(ctx context.Context, tenantID uuid.UUID, req StockEntryRequest) (*StockRecordDTO, error) {
	if req.Quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	existing, err := s.records.FindByWarehouseAndProduct(ctx, tenantID, req.WarehouseID, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if req.Quantity.IsPositive() {
			if err := existing.AddQuantity(req.Quantity); err != nil {
				return nil, err
			}
			if err := s.records.SaveWithLock(ctx, existing); err != nil {
				return nil, err
			}
		}
		s.publishEvents(ctx, existing.GetDomainEvents())
		existing.ClearDomainEvents()
		return ToStockRecordDTO(existing), nil
	}

	record, err := stock.NewStockRecord(tenantID, req.ProductID, req.WarehouseID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record.GetDomainEvents())
	record.ClearDomainEvents()

	s.logger.Info("stock entry created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("quantity", req.Quantity.String()),
	)

	return ToStockRecordDTO(record), nil
}

// AssignWarehouse moves an unassigned stock record into a warehouse
func (s *StockService) AssignWarehouse(ctx context.Context, tenantID, recordID, warehouseID uuid.UUID) (*StockRecordDTO, error) {
	record, err := s.records.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	if err := record.AssignWarehouse(warehouseID); err != nil {
		return nil, err
	}
	if err := s.records.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}
	return ToStockRecordDTO(record), nil
}

// GetRecord returns a single stock record
func (s *StockService) GetRecord(ctx context.Context, tenantID, recordID uuid.UUID) (*StockRecordDTO, error) {
	record, err := s.records.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	return ToStockRecordDTO(record), nil
}

// List returns the tenant's stock records
func (s *StockService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockRecordDTO], error) {
	records, err := s.records.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.records.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToStockRecordDTOs(records), total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetAvailability reports the available quantity for one product in one
// stock scope. A missing record reports zero.
func (s *StockService) GetAvailability(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID) (*AvailabilityDTO, error) {
	dto := &AvailabilityDTO{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Available:   decimal.Zero,
	}

	record, err := s.records.FindByWarehouseAndProduct(ctx, tenantID, warehouseID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return dto, nil
		}
		return nil, err
	}

	dto.Available = record.Quantity
	return dto, nil
}

// ProductSummary aggregates a product's stock across all warehouses,
// including stock not yet assigned to a warehouse
func (s *StockService) ProductSummary(ctx context.Context, tenantID, productID uuid.UUID) (*ProductStockSummaryDTO, error) {
	records, err := s.records.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	total, err := s.records.SumQuantityByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	return &ProductStockSummaryDTO{
		ProductID:     productID,
		TotalQuantity: total,
		Records:       ToStockRecordDTOs(records),
	}, nil
}

// RemoveRecord soft-deletes a stock record. Records holding stock cannot be
// removed.
func (s *StockService) RemoveRecord(ctx context.Context, tenantID, recordID uuid.UUID) error {
	record, err := s.records.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return err
	}
	if !record.Quantity.IsZero() {
		return shared.NewDomainError("RECORD_NOT_EMPTY", "Cannot remove a stock record that still holds stock")
	}
	if err := record.Remove(); err != nil {
		return err
	}
	return s.records.SaveWithLock(ctx, record)
}

func (s *StockService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
}
