package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusActive  OrderStatus = "active"
	OrderStatusDeleted OrderStatus = "deleted"
)

// LineStatus represents the lifecycle state of an order line
type LineStatus string

const (
	LineStatusActive  LineStatus = "active"
	LineStatusDeleted LineStatus = "deleted"
)

var oneHundred = decimal.NewFromInt(100)

// OrderLine is a line item within an order. Deleted lines stay on the order
// but are excluded from totals and stock math.
type OrderLine struct {
	shared.BaseEntity
	OrderID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID            `gorm:"type:uuid;not null"`
	Quantity        decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	LineTotal       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency        valueobject.Currency `gorm:"type:varchar(3);not null"`
	Status          LineStatus           `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates an order line and derives its total
func NewOrderLine(productID uuid.UUID, quantity, unitPrice, discountPercent decimal.Decimal, currency valueobject.Currency) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(oneHundred) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}

	line := &OrderLine{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		Currency:        currency,
		Status:          LineStatusActive,
	}
	line.LineTotal = line.computeTotal()

	return line, nil
}

// computeTotal derives the line total from quantity, unit price and discount
func (l *OrderLine) computeTotal() decimal.Decimal {
	gross, _ := valueobject.NewMoney(l.Quantity.Mul(l.UnitPrice), l.Currency)
	return gross.ApplyDiscount(l.DiscountPercent).Amount()
}

// IsActive returns true if the line has not been soft-deleted
func (l *OrderLine) IsActive() bool {
	return l.Status == LineStatusActive
}

// MarkDeleted soft-deletes the line
func (l *OrderLine) MarkDeleted() {
	l.Status = LineStatusDeleted
	l.UpdatedAt = time.Now()
}

// Order is the sales order aggregate root. Lines are part of the aggregate
// and are only modified through it.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber   string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	OrderDate     time.Time            `gorm:"type:date;not null;index"`
	CustomerID    *uuid.UUID           `gorm:"type:uuid"`
	EmployeeID    *uuid.UUID           `gorm:"type:uuid"`
	PaymentTypeID *uuid.UUID           `gorm:"type:uuid"`
	WarehouseID   *uuid.UUID           `gorm:"type:uuid"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null"`
	TotalPrice    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status        OrderStatus          `gorm:"type:varchar(20);not null;default:'active'"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order with the given lines. The order number is
// assigned by the repository before the first save.
func NewOrder(tenantID uuid.UUID, orderDate time.Time, currency valueobject.Currency, lines []OrderLine) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderDate:           orderDate.Truncate(24 * time.Hour),
		Currency:            currency,
		Status:              OrderStatusActive,
		Lines:               make([]OrderLine, 0, len(lines)),
	}
	for i := range lines {
		lines[i].OrderID = order.ID
		order.Lines = append(order.Lines, lines[i])
	}
	order.RecalculateTotal()

	return order, nil
}

// IsActive returns true if the order has not been soft-deleted
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusActive
}

// ActiveLines returns the lines that still participate in totals and stock
func (o *Order) ActiveLines() []OrderLine {
	active := make([]OrderLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		if line.IsActive() {
			active = append(active, line)
		}
	}
	return active
}

// ReplaceLines soft-deletes the current active lines and attaches the new
// set. Previously deleted lines are kept for history.
func (o *Order) ReplaceLines(lines []OrderLine) error {
	if !o.IsActive() {
		return shared.ErrInvalidState
	}
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}

	for i := range o.Lines {
		if o.Lines[i].IsActive() {
			o.Lines[i].MarkDeleted()
		}
	}
	for i := range lines {
		lines[i].OrderID = o.ID
		o.Lines = append(o.Lines, lines[i])
	}

	o.RecalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkDeleted soft-deletes the order. Lines keep their status so the
// stock reversal can still see what was active.
func (o *Order) MarkDeleted() error {
	if !o.IsActive() {
		return shared.ErrInvalidState
	}

	o.Status = OrderStatusDeleted
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// RecalculateTotal recomputes the order total from the active lines
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		if line.IsActive() {
			total = total.Add(line.LineTotal)
		}
	}
	o.TotalPrice = total
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.TotalPrice, o.Currency)
	return m
}
