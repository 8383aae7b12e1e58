package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/domain/partner"
	"github.com/salesdesk/backend/internal/domain/shared"
)

// CustomerRequest creates or updates a customer
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerDTO is the outward representation of a customer
type CustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerDTO(c *partner.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CustomerService handles customer CRUD
type CustomerService struct {
	customers partner.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService creates a customer service
func NewCustomerService(customers partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: logger}
}

// Create creates a customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CustomerRequest) (*CustomerDTO, error) {
	customer, err := partner.NewCustomer(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customer.ID.String()),
	)

	return toCustomerDTO(customer), nil
}

// Get returns a single customer
func (s *CustomerService) Get(ctx context.Context, tenantID, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerDTO(customer), nil
}

// List returns the tenant's customers
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[CustomerDTO], error) {
	customers, err := s.customers.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customers.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]CustomerDTO, len(customers))
	for i := range customers {
		dtos[i] = *toCustomerDTO(&customers[i])
	}
	page := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a customer's details
func (s *CustomerService) Update(ctx context.Context, tenantID, id uuid.UUID, req CustomerRequest) (*CustomerDTO, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerDTO(customer), nil
}

// Deactivate marks a customer inactive
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	customer.Deactivate()
	return s.customers.Save(ctx, customer)
}
