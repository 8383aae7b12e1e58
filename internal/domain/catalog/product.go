package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// Product is a sellable item
type Product struct {
	shared.TenantAggregateRoot
	Name        string          `gorm:"type:varchar(255);not null"`
	SKU         string          `gorm:"type:varchar(100);uniqueIndex:idx_product_tenant_sku,priority:2"`
	Description string          `gorm:"type:text"`
	ListPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product
func NewProduct(tenantID uuid.UUID, name, sku string, listPrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if listPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		SKU:                 sku,
		ListPrice:           listPrice,
		Active:              true,
	}, nil
}

// Update changes the product details
func (p *Product) Update(name, sku, description string, listPrice decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if listPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}

	p.Name = name
	p.SKU = sku
	p.Description = description
	p.ListPrice = listPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate marks the product inactive
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
