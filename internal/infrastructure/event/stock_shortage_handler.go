package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/stock"
)

// StockShortageHandler logs shortage and adjustment events so operators have
// an audit trail of every stock movement and every rejected order.
type StockShortageHandler struct {
	logger *zap.Logger
}

// NewStockShortageHandler creates a stock shortage handler
func NewStockShortageHandler(logger *zap.Logger) *StockShortageHandler {
	return &StockShortageHandler{logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *StockShortageHandler) EventTypes() []string {
	return []string{
		stock.EventTypeStockShortage,
		stock.EventTypeStockAdjusted,
	}
}

// Handle processes a stock event
func (h *StockShortageHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch e := evt.(type) {
	case *stock.StockShortageEvent:
		h.logger.Warn("stock shortage",
			zap.String("tenant_id", e.TenantID().String()),
			zap.String("product_id", e.ProductID.String()),
			zap.String("required", e.Required.String()),
			zap.String("available", e.Available.String()),
		)
	case *stock.StockAdjustedEvent:
		h.logger.Info("stock adjusted",
			zap.String("tenant_id", e.TenantID().String()),
			zap.String("product_id", e.ProductID.String()),
			zap.String("delta", e.Delta.String()),
			zap.String("new_quantity", e.NewQuantity.String()),
		)
	}
	return nil
}

var _ shared.EventHandler = (*StockShortageHandler)(nil)
