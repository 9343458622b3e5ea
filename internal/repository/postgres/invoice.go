package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"

	"github.com/lib/pq"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.SalesInvoice) error {
	query := `INSERT INTO sales_invoices (order_id, invoice_number, delivery_status, tax_amount, grand_total, is_paid, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		inv.OrderID, inv.InvoiceNumber, inv.DeliveryStatus, inv.TaxAmount, inv.GrandTotal, inv.IsPaid, time.Now()).Scan(&inv.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateInvoiceNumber
		}
		return err
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.SalesInvoice, error) {
	inv := &domain.SalesInvoice{}
	query := `SELECT id, order_id, invoice_number, delivery_status, tax_amount, grand_total, is_paid, created_on, deleted_on
	          FROM sales_invoices WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.OrderID, &inv.InvoiceNumber, &inv.DeliveryStatus, &inv.TaxAmount, &inv.GrandTotal, &inv.IsPaid, &inv.CreatedOn, &inv.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.SalesInvoice, error) {
	query := `SELECT id, order_id, invoice_number, delivery_status, tax_amount, grand_total, is_paid, created_on, deleted_on
	          FROM sales_invoices WHERE order_id = $1 AND deleted_on IS NULL ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.SalesInvoice
	for rows.Next() {
		var inv domain.SalesInvoice
		if err := rows.Scan(&inv.ID, &inv.OrderID, &inv.InvoiceNumber, &inv.DeliveryStatus, &inv.TaxAmount, &inv.GrandTotal, &inv.IsPaid, &inv.CreatedOn, &inv.DeletedOn); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id int32, status domain.DeliveryStatus) error {
	query := `UPDATE sales_invoices SET delivery_status = $1 WHERE id = $2 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) MarkCompletedByOrder(ctx context.Context, orderID int32) error {
	query := `UPDATE sales_invoices SET delivery_status = $1 WHERE order_id = $2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, domain.DeliveryStatusCompleted, orderID)
	return err
}
