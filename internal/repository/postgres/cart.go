package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// Upsert enforces one line per customer+product: an existing line gets its
// quantity, window and fulfillment type replaced.
func (r *cartRepository) Upsert(ctx context.Context, line *domain.CartLine) error {
	query := `INSERT INTO cart_lines (customer_id, product_id, quantity, start_date, end_date, is_service, added_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (customer_id, product_id)
	          DO UPDATE SET quantity = $3, start_date = $4, end_date = $5, is_service = $6, added_on = $7
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		line.CustomerID, line.ProductID, line.Quantity, line.StartDate, line.EndDate, line.IsService, time.Now()).Scan(&line.ID)
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.CartLine, error) {
	query := `SELECT id, customer_id, product_id, quantity, start_date, end_date, is_service, added_on
	          FROM cart_lines WHERE customer_id = $1 ORDER BY added_on`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.CustomerID, &l.ProductID, &l.Quantity, &l.StartDate, &l.EndDate, &l.IsService, &l.AddedOn); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *cartRepository) DeleteLine(ctx context.Context, customerID, productID int32) error {
	query := `DELETE FROM cart_lines WHERE customer_id = $1 AND product_id = $2`
	res, err := r.db.ExecContext(ctx, query, customerID, productID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *cartRepository) ClearByCustomer(ctx context.Context, customerID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE customer_id = $1`, customerID)
	return err
}
