package order

import (
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// Event types for the order domain
const (
	EventTypeOrderCreated = "order.created"
	EventTypeOrderUpdated = "order.updated"
	EventTypeOrderDeleted = "order.deleted"
)

const aggregateTypeOrder = "Order"

// OrderCreatedEvent is emitted when an order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	LineCount   int             `json:"line_count"`
}

// NewOrderCreatedEvent creates an order created event
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, aggregateTypeOrder, o.ID, o.TenantID),
		OrderNumber:     o.OrderNumber,
		TotalPrice:      o.TotalPrice,
		LineCount:       len(o.ActiveLines()),
	}
}

// OrderUpdatedEvent is emitted when an order's lines are replaced
type OrderUpdatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	LineCount   int             `json:"line_count"`
}

// NewOrderUpdatedEvent creates an order updated event
func NewOrderUpdatedEvent(o *Order) *OrderUpdatedEvent {
	return &OrderUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderUpdated, aggregateTypeOrder, o.ID, o.TenantID),
		OrderNumber:     o.OrderNumber,
		TotalPrice:      o.TotalPrice,
		LineCount:       len(o.ActiveLines()),
	}
}

// OrderDeletedEvent is emitted when an order is soft-deleted
type OrderDeletedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

// NewOrderDeletedEvent creates an order deleted event
func NewOrderDeletedEvent(o *Order) *OrderDeletedEvent {
	return &OrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDeleted, aggregateTypeOrder, o.ID, o.TenantID),
		OrderNumber:     o.OrderNumber,
	}
}
