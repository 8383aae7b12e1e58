package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/domain/partner"
	"github.com/salesdesk/backend/internal/domain/shared"
)

// WarehouseRequest creates or updates a warehouse
type WarehouseRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// WarehouseDTO is the outward representation of a warehouse
type WarehouseDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toWarehouseDTO(w *partner.Warehouse) *WarehouseDTO {
	return &WarehouseDTO{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// WarehouseService handles warehouse CRUD
type WarehouseService struct {
	warehouses partner.WarehouseRepository
	logger     *zap.Logger
}

// NewWarehouseService creates a warehouse service
func NewWarehouseService(warehouses partner.WarehouseRepository, logger *zap.Logger) *WarehouseService {
	return &WarehouseService{warehouses: warehouses, logger: logger}
}

// Create creates a warehouse
func (s *WarehouseService) Create(ctx context.Context, tenantID uuid.UUID, req WarehouseRequest) (*WarehouseDTO, error) {
	warehouse, err := partner.NewWarehouse(tenantID, req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	s.logger.Info("warehouse created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("warehouse_id", warehouse.ID.String()),
	)

	return toWarehouseDTO(warehouse), nil
}

// Get returns a single warehouse
func (s *WarehouseService) Get(ctx context.Context, tenantID, id uuid.UUID) (*WarehouseDTO, error) {
	warehouse, err := s.warehouses.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseDTO(warehouse), nil
}

// List returns the tenant's warehouses
func (s *WarehouseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[WarehouseDTO], error) {
	warehouses, err := s.warehouses.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.warehouses.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]WarehouseDTO, len(warehouses))
	for i := range warehouses {
		dtos[i] = *toWarehouseDTO(&warehouses[i])
	}
	page := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a warehouse's details
func (s *WarehouseService) Update(ctx context.Context, tenantID, id uuid.UUID, req WarehouseRequest) (*WarehouseDTO, error) {
	warehouse, err := s.warehouses.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := warehouse.Update(req.Name, req.Address); err != nil {
		return nil, err
	}
	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseDTO(warehouse), nil
}

// Deactivate marks a warehouse inactive
func (s *WarehouseService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	warehouse, err := s.warehouses.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	warehouse.Deactivate()
	return s.warehouses.Save(ctx, warehouse)
}
