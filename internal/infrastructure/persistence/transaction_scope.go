package persistence

import (
	"context"

	"gorm.io/gorm"

	appstock "github.com/salesdesk/backend/internal/application/stock"
	"github.com/salesdesk/backend/internal/domain/order"
	"github.com/salesdesk/backend/internal/domain/stock"
)

// GormTransactionScope implements the application transaction scope over a
// single gorm transaction. Every repository handed to the callback shares
// that transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a transaction scope on the given database
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRecordRepo returns a stock record repository bound to the transaction
func (r *gormTransactionalRepositories) StockRecordRepo() stock.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// OrderRepo returns an order repository bound to the transaction
func (r *gormTransactionalRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var _ appstock.TransactionScope = (*GormTransactionScope)(nil)
