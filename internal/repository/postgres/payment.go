package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// Payment entries are append-only; there is no update or delete.
func (r *paymentRepository) Create(ctx context.Context, entry *domain.PaymentEntry) error {
	query := `INSERT INTO payment_ledger (order_id, amount_paid, period, reference, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		entry.OrderID, entry.AmountPaid, entry.Period, entry.Reference, time.Now()).Scan(&entry.ID)
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.PaymentEntry, error) {
	query := `SELECT id, order_id, amount_paid, COALESCE(period, ''), COALESCE(reference, ''), created_on
	          FROM payment_ledger WHERE order_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PaymentEntry
	for rows.Next() {
		var e domain.PaymentEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.AmountPaid, &e.Period, &e.Reference, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
