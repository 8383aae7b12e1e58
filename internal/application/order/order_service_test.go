package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appstock "github.com/salesdesk/backend/internal/application/stock"
	"github.com/salesdesk/backend/internal/domain/order"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/shared/valueobject"
	"github.com/salesdesk/backend/internal/domain/stock"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepository) FindActiveLines(ctx context.Context, orderID uuid.UUID) ([]order.OrderLine, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *mockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) CountByOrderDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepository) NextOrderNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	args := m.Called(ctx, tenantID, date)
	return args.String(0), args.Error(1)
}

func (m *mockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStockRecordRepository struct {
	mock.Mock
}

func (m *mockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockRecord), args.Error(1)
}

func (m *mockStockRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*stock.StockRecord, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockRecord), args.Error(1)
}

func (m *mockStockRecordRepository) FindByWarehouseAndProduct(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID) (*stock.StockRecord, error) {
	args := m.Called(ctx, tenantID, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockRecord), args.Error(1)
}

func (m *mockStockRecordRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]stock.StockRecord, error) {
	args := m.Called(ctx, tenantID, warehouseID, filter)
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *mockStockRecordRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]stock.StockRecord, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *mockStockRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]stock.StockRecord, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *mockStockRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStockRecordRepository) SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockStockRecordRepository) Save(ctx context.Context, record *stock.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockStockRecordRepository) SaveWithLock(ctx context.Context, record *stock.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockStockRecordRepository) AdjustQuantity(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, productID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, tenantID, warehouseID, productID, delta)
	return args.Error(0)
}

func (m *mockStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type serviceFixture struct {
	service   *OrderService
	orders    *mockOrderRepository
	records   *mockStockRecordRepository
	tenantID  uuid.UUID
	warehouse uuid.UUID
}

func newServiceFixture() *serviceFixture {
	orders := new(mockOrderRepository)
	records := new(mockStockRecordRepository)
	scope := appstock.NewNoOpTransactionScope(records, orders)

	return &serviceFixture{
		service:   NewOrderService(orders, scope, nil, nil, zap.NewNop()),
		orders:    orders,
		records:   records,
		tenantID:  uuid.New(),
		warehouse: uuid.New(),
	}
}

func (f *serviceFixture) stockRecord(productID uuid.UUID, qty int64) *stock.StockRecord {
	record, _ := stock.NewStockRecord(f.tenantID, productID, &f.warehouse, decimal.NewFromInt(qty))
	record.ClearDomainEvents()
	return record
}

func TestCreateOrderDecrementsStockPerLine(t *testing.T) {
	f := newServiceFixture()
	productID := uuid.New()

	f.records.On("FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, productID).
		Return(f.stockRecord(productID, 10), nil)
	f.orders.On("NextOrderNumber", mock.Anything, f.tenantID, mock.Anything).
		Return("ORD-20260831-0001", nil)
	f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.records.On("AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productID, decimal.NewFromInt(-4)).
		Return(nil)

	dto, err := f.service.CreateOrder(context.Background(), f.tenantID, CreateOrderRequest{
		WarehouseID: &f.warehouse,
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260831-0001", dto.OrderNumber)
	assert.True(t, dto.TotalPrice.Equal(decimal.NewFromInt(40)))

	f.records.AssertCalled(t, "AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productID, decimal.NewFromInt(-4))
}

func TestCreateOrderInsufficientStockFailsBeforePersisting(t *testing.T) {
	f := newServiceFixture()
	productID := uuid.New()

	f.records.On("FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, productID).
		Return(f.stockRecord(productID, 2), nil)

	_, err := f.service.CreateOrder(context.Background(), f.tenantID, CreateOrderRequest{
		WarehouseID: &f.warehouse,
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(1)},
		},
	})

	var shortage *stock.InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	assert.True(t, shortage.Available.Equal(decimal.NewFromInt(2)))

	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.records.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderMissingStockRecordCountsAsZero(t *testing.T) {
	f := newServiceFixture()
	productID := uuid.New()

	f.records.On("FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, productID).
		Return(nil, shared.ErrNotFound)

	_, err := f.service.CreateOrder(context.Background(), f.tenantID, CreateOrderRequest{
		WarehouseID: &f.warehouse,
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})

	var shortage *stock.InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	assert.True(t, shortage.Available.IsZero())
}

func TestCreateOrderRetriesNumberOnceOnCollision(t *testing.T) {
	f := newServiceFixture()
	productID := uuid.New()

	f.records.On("FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, productID).
		Return(f.stockRecord(productID, 10), nil)
	f.orders.On("NextOrderNumber", mock.Anything, f.tenantID, mock.Anything).
		Return("ORD-20260831-0003", nil).Once()
	f.orders.On("NextOrderNumber", mock.Anything, f.tenantID, mock.Anything).
		Return("ORD-20260831-0004", nil).Once()
	f.orders.On("Save", mock.Anything, mock.Anything).
		Return(shared.ErrDuplicateOrderNumber).Once()
	f.orders.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	f.records.On("AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productID, decimal.NewFromInt(-1)).
		Return(nil)

	dto, err := f.service.CreateOrder(context.Background(), f.tenantID, CreateOrderRequest{
		WarehouseID: &f.warehouse,
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260831-0004", dto.OrderNumber)
	f.orders.AssertNumberOfCalls(t, "Save", 2)
}

func TestCreateOrderFailsAfterSecondCollision(t *testing.T) {
	f := newServiceFixture()
	productID := uuid.New()

	f.records.On("FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, productID).
		Return(f.stockRecord(productID, 10), nil)
	f.orders.On("NextOrderNumber", mock.Anything, f.tenantID, mock.Anything).
		Return("ORD-20260831-0003", nil)
	f.orders.On("Save", mock.Anything, mock.Anything).
		Return(shared.ErrDuplicateOrderNumber)

	_, err := f.service.CreateOrder(context.Background(), f.tenantID, CreateOrderRequest{
		WarehouseID: &f.warehouse,
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.ErrorIs(t, err, shared.ErrDuplicateOrderNumber)
	f.orders.AssertNumberOfCalls(t, "Save", 2)
	f.records.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (f *serviceFixture) existingOrder(t *testing.T, lines ...order.OrderLine) *order.Order {
	t.Helper()
	o, err := order.NewOrder(f.tenantID, time.Now(), valueobject.USD, lines)
	require.NoError(t, err)
	o.OrderNumber = "ORD-20260831-0001"
	o.WarehouseID = &f.warehouse
	return o
}

func testLine(t *testing.T, productID uuid.UUID, qty int64) order.OrderLine {
	t.Helper()
	line, err := order.NewOrderLine(productID, decimal.NewFromInt(qty), decimal.NewFromInt(10), decimal.Zero, valueobject.USD)
	require.NoError(t, err)
	return *line
}

func TestUpdateOrderAppliesNetDeltas(t *testing.T) {
	f := newServiceFixture()
	increased := uuid.New()
	decreased := uuid.New()

	existing := f.existingOrder(t,
		testLine(t, increased, 3),
		testLine(t, decreased, 6),
	)

	f.orders.On("FindByIDForTenant", mock.Anything, f.tenantID, existing.ID).Return(existing, nil)
	// only the increase is checked against stock
	f.records.On("FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, increased).
		Return(f.stockRecord(increased, 5), nil)
	f.orders.On("SaveWithLock", mock.Anything, existing).Return(nil)
	f.records.On("AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, increased, decimal.NewFromInt(-2)).
		Return(nil)
	f.records.On("AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, decreased, decimal.NewFromInt(5)).
		Return(nil)

	dto, err := f.service.UpdateOrder(context.Background(), f.tenantID, existing.ID, UpdateOrderRequest{
		Lines: []OrderLineRequest{
			{ProductID: increased, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10)},
			{ProductID: decreased, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Len(t, dto.Lines, 2)
	assert.True(t, dto.TotalPrice.Equal(decimal.NewFromInt(60)))

	f.records.AssertCalled(t, "AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, increased, decimal.NewFromInt(-2))
	f.records.AssertCalled(t, "AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, decreased, decimal.NewFromInt(5))
	f.records.AssertNotCalled(t, "FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, decreased)
}

func TestUpdateOrderMergesDuplicateLines(t *testing.T) {
	f := newServiceFixture()
	productID := uuid.New()

	existing := f.existingOrder(t, testLine(t, productID, 2))

	f.orders.On("FindByIDForTenant", mock.Anything, f.tenantID, existing.ID).Return(existing, nil)
	f.records.On("FindByWarehouseAndProduct", mock.Anything, f.tenantID, &f.warehouse, productID).
		Return(f.stockRecord(productID, 10), nil)
	f.orders.On("SaveWithLock", mock.Anything, existing).Return(nil)
	f.records.On("AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productID, decimal.NewFromInt(-4)).
		Return(nil)

	dto, err := f.service.UpdateOrder(context.Background(), f.tenantID, existing.ID, UpdateOrderRequest{
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
			{ProductID: productID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	// two submitted lines collapse into one merged line of quantity 6
	require.Len(t, dto.Lines, 1)
	assert.True(t, dto.Lines[0].Quantity.Equal(decimal.NewFromInt(6)))
}

func TestUpdateDeletedOrderNotFound(t *testing.T) {
	f := newServiceFixture()
	productID := uuid.New()

	existing := f.existingOrder(t, testLine(t, productID, 1))
	require.NoError(t, existing.MarkDeleted())

	f.orders.On("FindByIDForTenant", mock.Anything, f.tenantID, existing.ID).Return(existing, nil)

	_, err := f.service.UpdateOrder(context.Background(), f.tenantID, existing.ID, UpdateOrderRequest{
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	f := newServiceFixture()
	productA := uuid.New()
	productB := uuid.New()

	existing := f.existingOrder(t,
		testLine(t, productA, 3),
		testLine(t, productB, 2),
	)

	f.orders.On("FindByIDForTenant", mock.Anything, f.tenantID, existing.ID).Return(existing, nil)
	f.orders.On("SaveWithLock", mock.Anything, existing).Return(nil)
	f.records.On("AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productA, decimal.NewFromInt(3)).
		Return(nil)
	f.records.On("AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productB, decimal.NewFromInt(2)).
		Return(nil)

	require.NoError(t, f.service.DeleteOrder(context.Background(), f.tenantID, existing.ID))

	assert.Equal(t, order.OrderStatusDeleted, existing.Status)
	f.records.AssertCalled(t, "AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productA, decimal.NewFromInt(3))
	f.records.AssertCalled(t, "AdjustQuantity", mock.Anything, f.tenantID, &f.warehouse, productB, decimal.NewFromInt(2))
}

func TestDeleteOrderTwiceNotFound(t *testing.T) {
	f := newServiceFixture()

	existing := f.existingOrder(t, testLine(t, uuid.New(), 1))
	require.NoError(t, existing.MarkDeleted())

	f.orders.On("FindByIDForTenant", mock.Anything, f.tenantID, existing.ID).Return(existing, nil)

	err := f.service.DeleteOrder(context.Background(), f.tenantID, existing.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.records.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

type fakeIdempotencyStore struct {
	reserved map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{reserved: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	if s.reserved[key] {
		return false, nil
	}
	s.reserved[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) Release(_ context.Context, key string) error {
	delete(s.reserved, key)
	return nil
}

func TestCreateOrderIdempotencyKeyBlocksReplay(t *testing.T) {
	orders := new(mockOrderRepository)
	records := new(mockStockRecordRepository)
	scope := appstock.NewNoOpTransactionScope(records, orders)
	store := newFakeIdempotencyStore()
	service := NewOrderService(orders, scope, store, nil, zap.NewNop())

	tenantID := uuid.New()
	warehouseID := uuid.New()
	productID := uuid.New()

	record, _ := stock.NewStockRecord(tenantID, productID, &warehouseID, decimal.NewFromInt(10))
	records.On("FindByWarehouseAndProduct", mock.Anything, tenantID, &warehouseID, productID).
		Return(record, nil)
	orders.On("NextOrderNumber", mock.Anything, tenantID, mock.Anything).
		Return("ORD-20260831-0001", nil)
	orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	records.On("AdjustQuantity", mock.Anything, tenantID, &warehouseID, productID, decimal.NewFromInt(-1)).
		Return(nil)

	req := CreateOrderRequest{
		WarehouseID:    &warehouseID,
		IdempotencyKey: "client-key-1",
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	_, err := service.CreateOrder(context.Background(), tenantID, req)
	require.NoError(t, err)

	_, err = service.CreateOrder(context.Background(), tenantID, req)
	assert.ErrorIs(t, err, shared.ErrDuplicateRequest)
}

func TestCreateOrderReleasesKeyOnFailure(t *testing.T) {
	orders := new(mockOrderRepository)
	records := new(mockStockRecordRepository)
	scope := appstock.NewNoOpTransactionScope(records, orders)
	store := newFakeIdempotencyStore()
	service := NewOrderService(orders, scope, store, nil, zap.NewNop())

	tenantID := uuid.New()
	productID := uuid.New()

	records.On("FindByWarehouseAndProduct", mock.Anything, tenantID, (*uuid.UUID)(nil), productID).
		Return(nil, shared.ErrNotFound)

	req := CreateOrderRequest{
		IdempotencyKey: "client-key-2",
		Lines: []OrderLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	_, err := service.CreateOrder(context.Background(), tenantID, req)
	require.Error(t, err)

	// the key is free again, so a retry reaches the availability check
	_, err = service.CreateOrder(context.Background(), tenantID, req)
	var shortage *stock.InsufficientStockError
	assert.ErrorAs(t, err, &shortage)
}

func TestApplyDeltasWrapsMidSequenceFailure(t *testing.T) {
	records := new(mockStockRecordRepository)

	tenantID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	records.On("AdjustQuantity", mock.Anything, tenantID, (*uuid.UUID)(nil), first, decimal.NewFromInt(-1)).
		Return(nil)
	shortage := stock.NewInsufficientStockError(second, decimal.NewFromInt(2), decimal.Zero)
	records.On("AdjustQuantity", mock.Anything, tenantID, (*uuid.UUID)(nil), second, decimal.NewFromInt(-2)).
		Return(shortage)

	err := applyDeltas(context.Background(), records, tenantID, nil, []order.ProductQuantity{
		{ProductID: first, Quantity: decimal.NewFromInt(-1)},
		{ProductID: second, Quantity: decimal.NewFromInt(-2)},
	})

	var partial *stock.PartialAdjustmentError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.Applied)
	assert.Equal(t, 2, partial.Total)
	assert.ErrorIs(t, err, error(shortage))
}
