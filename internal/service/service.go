package service

import (
	"context"
	"time"

	"rentmart-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// AvailabilityService answers whether a product can cover a requested
// fulfillment. This is the advisory pre-check; the authoritative re-check
// happens inside the stock repository's reserve transactions.
type AvailabilityService interface {
	IsAvailable(ctx context.Context, productID int32, start, end time.Time, quantity int32) (bool, error)
	IsPurchasable(ctx context.Context, productID int32, quantity int32) (bool, error)
	// AvailableForWindow returns how many units are free over [start, end);
	// OnHandQuantity returns the raw physical counter.
	AvailableForWindow(ctx context.Context, productID int32, start, end time.Time) (int32, error)
	OnHandQuantity(ctx context.Context, productID int32) (int32, error)
}

// CheckoutService converts a customer's cart into per-vendor, per-fulfillment
// orders.
type CheckoutService interface {
	CreateOrdersFromCart(ctx context.Context, customerID int32) ([]domain.SalesOrder, error)
}

type OrderService interface {
	UpdateOrderStatus(ctx context.Context, vendorID, orderID int32, newStatus domain.OrderStatus) (*domain.SalesOrder, error)
	GetOrder(ctx context.Context, userID, orderID int32) (*domain.SalesOrder, error)
	ListVendorOrders(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error)
	ListCustomerOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error)
}

type InvoiceService interface {
	CreateInvoice(ctx context.Context, vendorID, orderID int32) (*domain.SalesInvoice, error)
	UpdateInvoiceStatus(ctx context.Context, vendorID, invoiceID int32, newStatus domain.DeliveryStatus) (*domain.SalesInvoice, error)
	RecordPayment(ctx context.Context, vendorID, orderID int32, amount decimal.Decimal, period, reference string) (*domain.PaymentEntry, error)
}

type SettlementService interface {
	CalculateReturn(ctx context.Context, vendorID, orderID int32) (*domain.ReturnSummary, error)
}

type CatalogService interface {
	AddProduct(ctx context.Context, vendorID int32, p *domain.Product) error
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	UpdateProduct(ctx context.Context, vendorID int32, p *domain.Product) error
	DeleteProduct(ctx context.Context, vendorID, productID int32) error
	ListVendorProducts(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error)
	AdjustStock(ctx context.Context, vendorID, productID int32, quantity int32, moveType domain.MovementType) (*domain.Stock, error)
}

type CartService interface {
	UpsertLine(ctx context.Context, customerID int32, line *domain.CartLine) error
	ListLines(ctx context.Context, customerID int32) ([]domain.CartLine, error)
	RemoveLine(ctx context.Context, customerID, productID int32) error
}

// EmailService sends customer/vendor notifications. Every call site treats a
// failure as log-and-continue; delivery problems never fail the operation
// that triggered them.
type EmailService interface {
	SendOrderPlacedNotification(ctx context.Context, vendorEmail, customerName string, orderID int32, total decimal.Decimal) error
	SendOrderStatusNotification(ctx context.Context, customerEmail string, orderID int32, status domain.OrderStatus) error
	SendReturnReminder(ctx context.Context, customerEmail string, orderID int32, endDate time.Time) error
	SendReturnSettlementNotification(ctx context.Context, customerEmail string, orderID int32, finalPayment decimal.Decimal) error
}
