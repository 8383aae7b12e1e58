package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// Warehouse is a physical location that holds stock
type Warehouse struct {
	shared.TenantAggregateRoot
	Name    string `gorm:"type:varchar(255);not null"`
	Address string `gorm:"type:text"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a warehouse
func NewWarehouse(tenantID uuid.UUID, name, address string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Address:             address,
		Active:              true,
	}, nil
}

// Update changes the warehouse details
func (w *Warehouse) Update(name, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	w.Name = name
	w.Address = address
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Deactivate marks the warehouse inactive
func (w *Warehouse) Deactivate() {
	w.Active = false
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}
