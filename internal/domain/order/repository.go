package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order by ID within a tenant, lines included
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its number within a tenant
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)

	// FindAllForTenant finds active orders for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindActiveLines returns the active lines of an order
	FindActiveLines(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error)

	// CountForTenant counts active orders matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByOrderDate counts orders (active and deleted) dated on the given
	// day. Deleted orders keep their number, so they still count.
	CountByOrderDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error)

	// ExistsByOrderNumber checks whether a number is already taken
	ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error)

	// NextOrderNumber generates the next number for the given date
	NextOrderNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error)

	// Save creates or updates an order together with its lines.
	// A unique-index collision on the order number is surfaced as
	// shared.ErrDuplicateOrderNumber.
	Save(ctx context.Context, o *Order) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, o *Order) error

	// Delete hard-deletes an order. Soft deletion goes through MarkDeleted
	// and Save.
	Delete(ctx context.Context, id uuid.UUID) error
}
