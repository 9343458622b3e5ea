package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type stockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) repository.StockRepository {
	return &stockRepository{db: db}
}

// GetByProduct returns a zero-quantity stock when the product has no stock
// row yet; callers treat that as "always unavailable".
func (r *stockRepository) GetByProduct(ctx context.Context, productID int32) (*domain.Stock, error) {
	s := &domain.Stock{ProductID: productID}
	query := `SELECT product_id, total_quantity, updated_on FROM stocks WHERE product_id = $1`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&s.ProductID, &s.TotalQuantity, &s.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListActiveRentalsOverlapping fetches the non-deleted RENTAL movements whose
// half-open window [start_date, end_date) overlaps [start, end).
func (r *stockRepository) ListActiveRentalsOverlapping(ctx context.Context, productID int32, start, end time.Time) ([]domain.StockMovement, error) {
	query := `SELECT id, product_id, order_id, type, quantity, start_date, end_date, created_on, deleted_on
	          FROM stock_movements
	          WHERE product_id = $1 AND type = 'RENTAL' AND deleted_on IS NULL
	            AND start_date < $3 AND end_date > $2
	          ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, productID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *stockRepository) ListMovementsByOrder(ctx context.Context, orderID int32) ([]domain.StockMovement, error) {
	query := `SELECT id, product_id, order_id, type, quantity, start_date, end_date, created_on, deleted_on
	          FROM stock_movements WHERE order_id = $1 AND deleted_on IS NULL ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

// AdjustQuantity applies a vendor-side IN/OUT correction: lock the stock row,
// move the counter, journal the movement. OUT may not drive the counter
// negative.
func (r *stockRepository) AdjustQuantity(ctx context.Context, productID int32, quantity int32, moveType domain.MovementType) error {
	if moveType != domain.MovementTypeIn && moveType != domain.MovementTypeOut {
		return fmt.Errorf("adjust quantity: unsupported movement type %s", moveType)
	}
	if quantity <= 0 {
		return domain.NewValidationError("adjustment quantity must be positive")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	total, err := lockStockRow(ctx, tx, productID)
	if err != nil {
		return err
	}

	delta := quantity
	if moveType == domain.MovementTypeOut {
		if total < quantity {
			return &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: total}
		}
		delta = -quantity
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO stocks (product_id, total_quantity, updated_on)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO UPDATE SET total_quantity = stocks.total_quantity + $2, updated_on = $3`,
		productID, delta, time.Now()); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO stock_movements (product_id, type, quantity, created_on)
		VALUES ($1, $2, $3, $4)`,
		productID, moveType, quantity, time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

// ReserveRentals is the authoritative check-and-reserve for a rental order:
// one transaction covering every line, stock row locked per product before the
// overlap re-read, one RENTAL movement appended per line. Any shortfall rolls
// the whole reservation back. Rentals never touch total_quantity; they consume
// availability through the overlap accounting only.
func (r *stockRepository) ReserveRentals(ctx context.Context, orderID int32, lines []domain.ReservationLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ln := range lines {
		if ln.StartDate == nil || ln.EndDate == nil {
			return domain.NewValidationError("rental line for product %d is missing its date window", ln.ProductID)
		}

		total, err := lockStockRow(ctx, tx, ln.ProductID)
		if err != nil {
			return err
		}

		var booked int32
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(quantity), 0) FROM stock_movements
			WHERE product_id = $1 AND type = 'RENTAL' AND deleted_on IS NULL
			  AND start_date < $3 AND end_date > $2`,
			ln.ProductID, *ln.StartDate, *ln.EndDate).Scan(&booked)
		if err != nil {
			return err
		}

		if total-booked < ln.Quantity {
			return &domain.InsufficientStockError{ProductID: ln.ProductID, Requested: ln.Quantity, Available: total - booked}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stock_movements (product_id, order_id, type, quantity, start_date, end_date, created_on)
			VALUES ($1, $2, 'RENTAL', $3, $4, $5, $6)`,
			ln.ProductID, orderID, ln.Quantity, *ln.StartDate, *ln.EndDate, time.Now()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeductSales commits a purchase order's stock effect: lock, verify the
// counter covers the quantity, decrement, journal a SALE movement. All lines
// in one transaction, all-or-nothing.
func (r *stockRepository) DeductSales(ctx context.Context, orderID int32, lines []domain.ReservationLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ln := range lines {
		total, err := lockStockRow(ctx, tx, ln.ProductID)
		if err != nil {
			return err
		}
		if total < ln.Quantity {
			return &domain.InsufficientStockError{ProductID: ln.ProductID, Requested: ln.Quantity, Available: total}
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE stocks SET total_quantity = total_quantity - $2, updated_on = $3 WHERE product_id = $1`,
			ln.ProductID, ln.Quantity, time.Now()); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stock_movements (product_id, order_id, type, quantity, created_on)
			VALUES ($1, $2, 'SALE', $3, $4)`,
			ln.ProductID, orderID, ln.Quantity, time.Now()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReleaseByOrder compensates an order's stock effects when it is rejected or
// cancelled: SALE quantities go back onto the counter, then every movement of
// the order is soft-deleted so RENTAL windows stop counting toward
// availability.
func (r *stockRepository) ReleaseByOrder(ctx context.Context, orderID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity FROM stock_movements
		WHERE order_id = $1 AND type = 'SALE' AND deleted_on IS NULL`, orderID)
	if err != nil {
		return err
	}
	type sale struct {
		productID int32
		quantity  int32
	}
	var sales []sale
	for rows.Next() {
		var s sale
		if err := rows.Scan(&s.productID, &s.quantity); err != nil {
			rows.Close()
			return err
		}
		sales = append(sales, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, s := range sales {
		if _, err := tx.ExecContext(ctx, `
			UPDATE stocks SET total_quantity = total_quantity + $2, updated_on = $3 WHERE product_id = $1`,
			s.productID, s.quantity, time.Now()); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE stock_movements SET deleted_on = $2 WHERE order_id = $1 AND deleted_on IS NULL`,
		orderID, time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

// lockStockRow reads total_quantity under FOR UPDATE; an absent row counts as
// zero (and leaves nothing to lock, which is fine: there is nothing to
// oversell either).
func lockStockRow(ctx context.Context, tx *sql.Tx, productID int32) (int32, error) {
	var total int32
	err := tx.QueryRowContext(ctx, `SELECT total_quantity FROM stocks WHERE product_id = $1 FOR UPDATE`, productID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

func scanMovements(rows *sql.Rows) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.OrderID, &m.Type, &m.Quantity, &m.StartDate, &m.EndDate, &m.CreatedOn, &m.DeletedOn); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
