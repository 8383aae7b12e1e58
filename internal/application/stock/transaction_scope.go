package stock

import (
	"context"

	"github.com/salesdesk/backend/internal/domain/order"
	"github.com/salesdesk/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories that
// take part in order/stock reconciliation. All repository operations inside
// Execute share one database transaction and commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current transaction.
type TransactionalRepositories interface {
	// StockRecordRepo returns the stock record repository
	StockRecordRepo() stock.StockRecordRepository
	// OrderRepo returns the order repository
	OrderRepo() order.OrderRepository
}

// NoOpTransactionScope is a transaction scope without real transactions.
// Useful for tests and callers that accept weaker atomicity; a failed
// multi-line adjustment then surfaces as a PartialAdjustmentError.
type NoOpTransactionScope struct {
	stockRecordRepo stock.StockRecordRepository
	orderRepo       order.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(stockRecordRepo stock.StockRecordRepository, orderRepo order.OrderRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRecordRepo: stockRecordRepo,
		orderRepo:       orderRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRecordRepo returns the stock record repository
func (s *NoOpTransactionScope) StockRecordRepo() stock.StockRecordRepository {
	return s.stockRecordRepo
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository {
	return s.orderRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
