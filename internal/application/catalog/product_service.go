package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/domain/catalog"
	"github.com/salesdesk/backend/internal/domain/shared"
)

// ProductRequest creates or updates a product
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	ListPrice   decimal.Decimal `json:"list_price"`
}

// ProductDTO is the outward representation of a product
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku,omitempty"`
	Description string          `json:"description,omitempty"`
	ListPrice   decimal.Decimal `json:"list_price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductDTO(p *catalog.Product) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		ListPrice:   p.ListPrice,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductService handles product CRUD
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a product service
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// Create creates a product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req ProductRequest) (*ProductDTO, error) {
	product, err := catalog.NewProduct(tenantID, req.Name, req.SKU, req.ListPrice)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
	)

	return toProductDTO(product), nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

// List returns the tenant's products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductDTO], error) {
	products, err := s.products.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = *toProductDTO(&products[i])
	}
	page := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a product's details
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req ProductRequest) (*ProductDTO, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.SKU, req.Description, req.ListPrice); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

// Deactivate marks a product inactive
func (s *ProductService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.products.Save(ctx, product)
}
