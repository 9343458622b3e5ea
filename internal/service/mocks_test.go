package service_test

import (
	"context"
	"time"

	"rentmart-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) ListByVendor(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, vendorID, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}

// MockStockRepo
type MockStockRepo struct {
	mock.Mock
}

func (m *MockStockRepo) GetByProduct(ctx context.Context, productID int32) (*domain.Stock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}
func (m *MockStockRepo) ListActiveRentalsOverlapping(ctx context.Context, productID int32, start, end time.Time) ([]domain.StockMovement, error) {
	args := m.Called(ctx, productID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}
func (m *MockStockRepo) ListMovementsByOrder(ctx context.Context, orderID int32) ([]domain.StockMovement, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}
func (m *MockStockRepo) AdjustQuantity(ctx context.Context, productID int32, quantity int32, moveType domain.MovementType) error {
	args := m.Called(ctx, productID, quantity, moveType)
	return args.Error(0)
}
func (m *MockStockRepo) ReserveRentals(ctx context.Context, orderID int32, lines []domain.ReservationLine) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}
func (m *MockStockRepo) DeductSales(ctx context.Context, orderID int32, lines []domain.ReservationLine) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}
func (m *MockStockRepo) ReleaseByOrder(ctx context.Context, orderID int32) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockCartRepo
type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) Upsert(ctx context.Context, line *domain.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}
func (m *MockCartRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.CartLine, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}
func (m *MockCartRepo) DeleteLine(ctx context.Context, customerID, productID int32) error {
	args := m.Called(ctx, customerID, productID)
	return args.Error(0)
}
func (m *MockCartRepo) ClearByCustomer(ctx context.Context, customerID int32) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesOrder), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	return args.Get(0).([]domain.SalesOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.SalesOrder), args.Get(1).(int32), args.Error(2)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.SalesInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.SalesInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesInvoice), args.Error(1)
}
func (m *MockInvoiceRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.SalesInvoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesInvoice), args.Error(1)
}
func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, id int32, status domain.DeliveryStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockInvoiceRepo) MarkCompletedByOrder(ctx context.Context, orderID int32) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, entry *domain.PaymentEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderPlacedNotification(ctx context.Context, vendorEmail, customerName string, orderID int32, total decimal.Decimal) error {
	args := m.Called(ctx, vendorEmail, customerName, orderID, total)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderStatusNotification(ctx context.Context, customerEmail string, orderID int32, status domain.OrderStatus) error {
	args := m.Called(ctx, customerEmail, orderID, status)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, customerEmail string, orderID int32, endDate time.Time) error {
	args := m.Called(ctx, customerEmail, orderID, endDate)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnSettlementNotification(ctx context.Context, customerEmail string, orderID int32, finalPayment decimal.Decimal) error {
	args := m.Called(ctx, customerEmail, orderID, finalPayment)
	return args.Error(0)
}
