package repository

import (
	"context"
	"time"

	"rentmart-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int32) error
	ListByVendor(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error)
}

// StockRepository owns the physical-quantity counter and the movement journal.
// The Reserve/Deduct/Release methods each run as one transaction with
// per-product row locks so that two overlapping reservations can never both
// succeed; any line failure rolls the whole call back.
type StockRepository interface {
	GetByProduct(ctx context.Context, productID int32) (*domain.Stock, error)
	ListActiveRentalsOverlapping(ctx context.Context, productID int32, start, end time.Time) ([]domain.StockMovement, error)
	ListMovementsByOrder(ctx context.Context, orderID int32) ([]domain.StockMovement, error)
	AdjustQuantity(ctx context.Context, productID int32, quantity int32, moveType domain.MovementType) error
	ReserveRentals(ctx context.Context, orderID int32, lines []domain.ReservationLine) error
	DeductSales(ctx context.Context, orderID int32, lines []domain.ReservationLine) error
	ReleaseByOrder(ctx context.Context, orderID int32) error
}

type CartRepository interface {
	Upsert(ctx context.Context, line *domain.CartLine) error
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.CartLine, error)
	DeleteLine(ctx context.Context, customerID, productID int32) error
	ClearByCustomer(ctx context.Context, customerID int32) error
}

type OrderRepository interface {
	// Create inserts the order and all of its details in one transaction.
	Create(ctx context.Context, order *domain.SalesOrder) error
	GetByID(ctx context.Context, id int32) (*domain.SalesOrder, error)
	UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error
	ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error)
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error)
}

type InvoiceRepository interface {
	// Create returns domain.ErrDuplicateInvoiceNumber when the invoice number
	// collides with an existing one.
	Create(ctx context.Context, inv *domain.SalesInvoice) error
	GetByID(ctx context.Context, id int32) (*domain.SalesInvoice, error)
	ListByOrder(ctx context.Context, orderID int32) ([]domain.SalesInvoice, error)
	UpdateStatus(ctx context.Context, id int32, status domain.DeliveryStatus) error
	MarkCompletedByOrder(ctx context.Context, orderID int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, entry *domain.PaymentEntry) error
	ListByOrder(ctx context.Context, orderID int32) ([]domain.PaymentEntry, error)
}
