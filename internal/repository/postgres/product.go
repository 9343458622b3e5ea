package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, vendor_id, name, COALESCE(description, ''), price_per_hour, price_per_day, price_per_week, price_per_month,
	discount_pct, tax_pct, security_deposit, is_available, is_published, created_on, updated_on, deleted_on`

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (vendor_id, name, description, price_per_hour, price_per_day, price_per_week, price_per_month,
	          discount_pct, tax_pct, security_deposit, is_available, is_published, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.VendorID, p.Name, p.Description, p.PricePerHour, p.PricePerDay, p.PricePerWeek, p.PricePerMonth,
		p.DiscountPct, p.TaxPct, p.SecurityDeposit, p.IsAvailable, p.IsPublished, now, now).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.VendorID, &p.Name, &p.Description, &p.PricePerHour, &p.PricePerDay, &p.PricePerWeek, &p.PricePerMonth,
		&p.DiscountPct, &p.TaxPct, &p.SecurityDeposit, &p.IsAvailable, &p.IsPublished, &p.CreatedOn, &p.UpdatedOn, &p.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, price_per_hour=$3, price_per_day=$4, price_per_week=$5, price_per_month=$6,
	          discount_pct=$7, tax_pct=$8, security_deposit=$9, is_available=$10, is_published=$11, updated_on=$12
	          WHERE id=$13 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.PricePerHour, p.PricePerDay, p.PricePerWeek, p.PricePerMonth,
		p.DiscountPct, p.TaxPct, p.SecurityDeposit, p.IsAvailable, p.IsPublished, time.Now(), p.ID)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	query := `UPDATE products SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *productRepository) ListByVendor(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + productColumns + ` FROM products WHERE vendor_id = $1 AND deleted_on IS NULL
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, vendorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.VendorID, &p.Name, &p.Description, &p.PricePerHour, &p.PricePerDay, &p.PricePerWeek, &p.PricePerMonth,
			&p.DiscountPct, &p.TaxPct, &p.SecurityDeposit, &p.IsAvailable, &p.IsPublished, &p.CreatedOn, &p.UpdatedOn, &p.DeletedOn); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM products WHERE vendor_id = $1 AND deleted_on IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, vendorID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}
