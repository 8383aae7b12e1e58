package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/order"
	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
)

// OrderLineRequest is a proposed order line
type OrderLineRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateOrderRequest creates a new order
type CreateOrderRequest struct {
	OrderDate     *time.Time         `json:"order_date"`
	CustomerID    *uuid.UUID         `json:"customer_id"`
	EmployeeID    *uuid.UUID         `json:"employee_id"`
	PaymentTypeID *uuid.UUID         `json:"payment_type_id"`
	WarehouseID   *uuid.UUID         `json:"warehouse_id"`
	Currency      string             `json:"currency"`
	Lines         []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`

	// IdempotencyKey is taken from the Idempotency-Key header, not the body
	IdempotencyKey string `json:"-"`
}

// UpdateOrderRequest replaces the lines of an existing order
type UpdateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineDTO is the outward representation of an order line
type OrderLineDTO struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Status          string          `json:"status"`
}

// OrderDTO is the outward representation of an order
type OrderDTO struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	OrderDate     time.Time       `json:"order_date"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	EmployeeID    *uuid.UUID      `json:"employee_id,omitempty"`
	PaymentTypeID *uuid.UUID      `json:"payment_type_id,omitempty"`
	WarehouseID   *uuid.UUID      `json:"warehouse_id,omitempty"`
	Currency      string          `json:"currency"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"`
	Lines         []OrderLineDTO  `json:"lines"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToOrderDTO converts an order to its DTO. Only active lines are exposed.
func ToOrderDTO(o *order.Order) *OrderDTO {
	active := o.ActiveLines()
	lines := make([]OrderLineDTO, len(active))
	for i, line := range active {
		lines[i] = OrderLineDTO{
			ID:              line.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			LineTotal:       line.LineTotal,
			Status:          string(line.Status),
		}
	}

	return &OrderDTO{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		OrderDate:     o.OrderDate,
		CustomerID:    o.CustomerID,
		EmployeeID:    o.EmployeeID,
		PaymentTypeID: o.PaymentTypeID,
		WarehouseID:   o.WarehouseID,
		Currency:      string(o.Currency),
		TotalPrice:    o.TotalPrice,
		Status:        string(o.Status),
		Lines:         lines,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderDTOs converts a slice of orders
func ToOrderDTOs(orders []order.Order) []OrderDTO {
	dtos := make([]OrderDTO, len(orders))
	for i := range orders {
		dtos[i] = *ToOrderDTO(&orders[i])
	}
	return dtos
}

func (r OrderLineRequest) toDomainLine(currency valueobject.Currency) (*order.OrderLine, error) {
	return order.NewOrderLine(r.ProductID, r.Quantity, r.UnitPrice, r.DiscountPercent, currency)
}
