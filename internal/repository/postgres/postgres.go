package postgres

import (
	"database/sql"

	"rentmart-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProductRepository
	repository.StockRepository
	repository.CartRepository
	repository.OrderRepository
	repository.InvoiceRepository
	repository.PaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UserRepository:    NewUserRepository(db),
		ProductRepository: NewProductRepository(db),
		StockRepository:   NewStockRepository(db),
		CartRepository:    NewCartRepository(db),
		OrderRepository:   NewOrderRepository(db),
		InvoiceRepository: NewInvoiceRepository(db),
		PaymentRepository: NewPaymentRepository(db),
	}
}
