package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appstock "github.com/salesdesk/backend/internal/application/stock"
	"github.com/salesdesk/backend/internal/domain/order"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
	"github.com/salesdesk/backend/internal/domain/stock"
)

// idempotencyTTL bounds how long a submitted order key blocks replays
const idempotencyTTL = 24 * time.Hour

// OrderService orchestrates order creation, line replacement and deletion
// together with the matching stock adjustments. Every write path runs the
// availability check and the adjustments inside one transaction scope.
type OrderService struct {
	orders      order.OrderRepository
	scope       appstock.TransactionScope
	idempotency shared.IdempotencyStore
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates an order service. The idempotency store is
// optional; without it duplicate submissions are not detected.
func NewOrderService(
	orders order.OrderRepository,
	scope appstock.TransactionScope,
	idempotency shared.IdempotencyStore,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		scope:       scope,
		idempotency: idempotency,
		events:      events,
		logger:      logger,
	}
}

// CreateOrder creates an order and decrements stock for every line. The
// proposed lines are checked against stock as submitted; lines are not
// merged on creation. The whole sequence runs in one transaction, so either
// the order exists with all its stock consumed or nothing changed.
func (s *OrderService) CreateOrder(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error) {
	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	lines := make([]order.OrderLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line, err := lr.toDomainLine(currency)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	reserved, err := s.reserveKey(ctx, tenantID, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
		checker := stock.NewAvailabilityChecker(repos.StockRecordRepo())
		if err := checker.CheckCreate(ctx, tenantID, req.WarehouseID, lineDemands(lines)); err != nil {
			return err
		}

		o, err := order.NewOrder(tenantID, orderDate, currency, lines)
		if err != nil {
			return err
		}
		o.CustomerID = req.CustomerID
		o.EmployeeID = req.EmployeeID
		o.PaymentTypeID = req.PaymentTypeID
		o.WarehouseID = req.WarehouseID

		if err := s.saveWithNumber(ctx, repos.OrderRepo(), o); err != nil {
			return err
		}

		deltas := make([]order.ProductQuantity, 0, len(o.Lines))
		for _, line := range o.Lines {
			deltas = append(deltas, order.ProductQuantity{
				ProductID: line.ProductID,
				Quantity:  line.Quantity.Neg(),
			})
		}
		if err := applyDeltas(ctx, repos.StockRecordRepo(), tenantID, req.WarehouseID, deltas); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		s.releaseKey(ctx, tenantID, req.IdempotencyKey, reserved)
		s.reportShortage(ctx, tenantID, err)
		return nil, err
	}

	s.publish(ctx, order.NewOrderCreatedEvent(created))
	s.logger.Info("order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_number", created.OrderNumber),
		zap.String("total_price", created.TotalPrice.String()),
	)

	return ToOrderDTO(created), nil
}

// UpdateOrder replaces the active lines of an order. The proposed lines are
// merged by product and discount first, then only the positive net deltas
// against the previous lines are checked before the signed deltas are
// applied to stock.
func (s *OrderService) UpdateOrder(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderDTO, error) {
	var updated *order.Order
	err := s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !o.IsActive() {
			return shared.ErrNotFound
		}

		proposed := make([]order.OrderLine, 0, len(req.Lines))
		for _, lr := range req.Lines {
			line, err := lr.toDomainLine(o.Currency)
			if err != nil {
				return err
			}
			proposed = append(proposed, *line)
		}
		merged := order.MergeLines(proposed)

		previous := o.ActiveLines()
		deltas := order.NetQuantityDeltas(merged, previous)

		checker := stock.NewAvailabilityChecker(repos.StockRecordRepo())
		if err := checker.CheckUpdate(ctx, tenantID, o.WarehouseID, deltaDemands(deltas)); err != nil {
			return err
		}

		if err := o.ReplaceLines(merged); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		// a positive delta consumes stock, so the stock movement is negated
		if err := applyDeltas(ctx, repos.StockRecordRepo(), tenantID, o.WarehouseID, negate(deltas)); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		s.reportShortage(ctx, tenantID, err)
		return nil, err
	}

	s.publish(ctx, order.NewOrderUpdatedEvent(updated))

	return ToOrderDTO(updated), nil
}

// DeleteOrder soft-deletes an order and returns the stock of every active
// line, reversing the order's entire stock impact.
func (s *OrderService) DeleteOrder(ctx context.Context, tenantID, orderID uuid.UUID) error {
	var deleted *order.Order
	err := s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !o.IsActive() {
			return shared.ErrNotFound
		}

		restored := make([]order.ProductQuantity, 0, len(o.Lines))
		for _, line := range o.ActiveLines() {
			restored = append(restored, order.ProductQuantity{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		if err := o.MarkDeleted(); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		if err := applyDeltas(ctx, repos.StockRecordRepo(), tenantID, o.WarehouseID, restored); err != nil {
			return err
		}

		deleted = o
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, order.NewOrderDeletedEvent(deleted))
	s.logger.Info("order deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_number", deleted.OrderNumber),
	)

	return nil
}

// GetOrder returns a single order
func (s *OrderService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderDTO, error) {
	o, err := s.orders.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsActive() {
		return nil, shared.ErrNotFound
	}
	return ToOrderDTO(o), nil
}

// ListOrders returns the tenant's active orders
func (s *OrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderDTO], error) {
	orders, err := s.orders.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToOrderDTOs(orders), total, filter.Page, filter.PageSize)
	return &page, nil
}

// saveWithNumber assigns the next order number and saves. A unique-index
// collision from a concurrent order on the same date is retried once with
// a fresh number.
func (s *OrderService) saveWithNumber(ctx context.Context, repo order.OrderRepository, o *order.Order) error {
	for attempt := 0; ; attempt++ {
		number, err := repo.NextOrderNumber(ctx, o.TenantID, o.OrderDate)
		if err != nil {
			return err
		}
		o.OrderNumber = number

		err = repo.Save(ctx, o)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrDuplicateOrderNumber) || attempt > 0 {
			return err
		}
		s.logger.Warn("order number collision, retrying",
			zap.String("order_number", number),
		)
	}
}

// reserveKey claims the idempotency key when one is supplied
func (s *OrderService) reserveKey(ctx context.Context, tenantID uuid.UUID, key string) (bool, error) {
	if s.idempotency == nil || key == "" {
		return false, nil
	}
	ok, err := s.idempotency.Reserve(ctx, idempotencyKey(tenantID, key), idempotencyTTL)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, shared.ErrDuplicateRequest
	}
	return true, nil
}

// releaseKey frees a reserved key after a failed creation so the client can
// retry with the same key
func (s *OrderService) releaseKey(ctx context.Context, tenantID uuid.UUID, key string, reserved bool) {
	if !reserved {
		return
	}
	if err := s.idempotency.Release(ctx, idempotencyKey(tenantID, key)); err != nil {
		s.logger.Warn("failed to release idempotency key", zap.Error(err))
	}
}

func idempotencyKey(tenantID uuid.UUID, key string) string {
	return "order:" + tenantID.String() + ":" + key
}

// reportShortage publishes a shortage event when a reconciliation failed on
// insufficient stock
func (s *OrderService) reportShortage(ctx context.Context, tenantID uuid.UUID, err error) {
	var shortage *stock.InsufficientStockError
	if errors.As(err, &shortage) {
		s.publish(ctx, stock.NewStockShortageEvent(tenantID, shortage))
	}
}

func (s *OrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
}

// lineDemands maps lines to stock demands, one per line. Duplicate product
// lines stay separate on creation.
func lineDemands(lines []order.OrderLine) []stock.Demand {
	demands := make([]stock.Demand, len(lines))
	for i, line := range lines {
		demands[i] = stock.Demand{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	return demands
}

func deltaDemands(deltas []order.ProductQuantity) []stock.Demand {
	demands := make([]stock.Demand, len(deltas))
	for i, d := range deltas {
		demands[i] = stock.Demand{ProductID: d.ProductID, Quantity: d.Quantity}
	}
	return demands
}

func negate(deltas []order.ProductQuantity) []order.ProductQuantity {
	negated := make([]order.ProductQuantity, len(deltas))
	for i, d := range deltas {
		negated[i] = order.ProductQuantity{ProductID: d.ProductID, Quantity: d.Quantity.Neg()}
	}
	return negated
}

// applyDeltas applies signed stock movements one conditional update at a
// time. When a later movement fails after earlier ones were applied the
// error is wrapped so non-transactional callers know compensation is due.
func applyDeltas(ctx context.Context, repo stock.StockRecordRepository, tenantID uuid.UUID, warehouseID *uuid.UUID, deltas []order.ProductQuantity) error {
	applied := 0
	for _, d := range deltas {
		if d.Quantity.IsZero() {
			continue
		}
		if err := repo.AdjustQuantity(ctx, tenantID, warehouseID, d.ProductID, d.Quantity); err != nil {
			if applied > 0 {
				return stock.NewPartialAdjustmentError(applied, len(deltas), err)
			}
			return err
		}
		applied++
	}
	return nil
}
