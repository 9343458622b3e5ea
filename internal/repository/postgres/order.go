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

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its detail lines in one transaction so a
// half-written order is never visible.
func (r *orderRepository) Create(ctx context.Context, order *domain.SalesOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO sales_orders (customer_id, vendor_id, status, payment_plan, total_order_value, is_service, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		order.CustomerID, order.VendorID, order.Status, order.PaymentPlan, order.TotalOrderValue, order.IsService, now, now).Scan(&order.ID); err != nil {
		return err
	}

	for i := range order.Details {
		d := &order.Details[i]
		d.OrderID = order.ID
		detailQuery := `INSERT INTO sales_order_details (order_id, product_id, quantity, unit_price, subtotal, deposit_total, start_date, end_date)
		                VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
		if err := tx.QueryRowContext(ctx, detailQuery,
			d.OrderID, d.ProductID, d.Quantity, d.UnitPrice, d.Subtotal, d.DepositTotal, d.StartDate, d.EndDate).Scan(&d.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.SalesOrder, error) {
	o := &domain.SalesOrder{}
	query := `SELECT id, customer_id, vendor_id, status, COALESCE(payment_plan, ''), total_order_value, is_service, created_on, updated_on, deleted_on
	          FROM sales_orders WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.VendorID, &o.Status, &o.PaymentPlan, &o.TotalOrderValue, &o.IsService, &o.CreatedOn, &o.UpdatedOn, &o.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	details, err := r.listDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Details = details
	return o, nil
}

func (r *orderRepository) listDetails(ctx context.Context, orderID int32) ([]domain.SalesOrderDetail, error) {
	query := `SELECT id, order_id, product_id, quantity, unit_price, subtotal, deposit_total, start_date, end_date
	          FROM sales_order_details WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.SalesOrderDetail
	for rows.Next() {
		var d domain.SalesOrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal, &d.DepositTotal, &d.StartDate, &d.EndDate); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error {
	query := `UPDATE sales_orders SET status = $1, updated_on = $2 WHERE id = $3 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error) {
	return r.list(ctx, "vendor_id", vendorID, status, page, pageSize)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error) {
	return r.list(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, ownerColumn string, ownerID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, customer_id, vendor_id, status, COALESCE(payment_plan, ''), total_order_value, is_service, created_on, updated_on, deleted_on
	          FROM sales_orders WHERE ` + ownerColumn + ` = $1 AND deleted_on IS NULL`

	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.SalesOrder
	for rows.Next() {
		var o domain.SalesOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.VendorID, &o.Status, &o.PaymentPlan, &o.TotalOrderValue, &o.IsService, &o.CreatedOn, &o.UpdatedOn, &o.DeletedOn); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}
