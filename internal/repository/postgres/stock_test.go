package postgres_test

import (
	"context"
	"testing"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStockRepository_GetByProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewStockRepository(db)
	ctx := context.Background()

	t.Run("Existing row", func(t *testing.T) {
		mock.ExpectQuery("SELECT product_id, total_quantity, updated_on FROM stocks").
			WithArgs(int32(101)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "total_quantity", "updated_on"}).
				AddRow(101, 10, time.Now()))

		stock, err := repo.GetByProduct(ctx, 101)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), stock.TotalQuantity)
	})

	t.Run("Missing row counts as zero", func(t *testing.T) {
		mock.ExpectQuery("SELECT product_id, total_quantity, updated_on FROM stocks").
			WithArgs(int32(999)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "total_quantity", "updated_on"}))

		stock, err := repo.GetByProduct(ctx, 999)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), stock.TotalQuantity)
		assert.Equal(t, int32(999), stock.ProductID)
	})
}

func TestStockRepository_ReserveRentals(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	lines := []domain.ReservationLine{
		{ProductID: 101, Quantity: 2, StartDate: &start, EndDate: &end},
	}

	t.Run("Reserves when the window has room", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewStockRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT total_quantity FROM stocks").
			WithArgs(int32(101)).
			WillReturnRows(sqlmock.NewRows([]string{"total_quantity"}).AddRow(10))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM stock_movements`).
			WithArgs(int32(101), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(6))
		mock.ExpectExec("INSERT INTO stock_movements").
			WithArgs(int32(101), int32(50), int32(2), start, end, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err = repo.ReserveRentals(ctx, 50, lines)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Shortfall rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewStockRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT total_quantity FROM stocks").
			WithArgs(int32(101)).
			WillReturnRows(sqlmock.NewRows([]string{"total_quantity"}).AddRow(10))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM stock_movements`).
			WithArgs(int32(101), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(9))
		mock.ExpectRollback()

		err = repo.ReserveRentals(ctx, 50, lines)
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int32(1), stockErr.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing window rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewStockRepository(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = repo.ReserveRentals(ctx, 50, []domain.ReservationLine{{ProductID: 101, Quantity: 1}})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestStockRepository_DeductSales(t *testing.T) {
	ctx := context.Background()
	lines := []domain.ReservationLine{{ProductID: 102, Quantity: 3}}

	t.Run("Decrements the counter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewStockRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT total_quantity FROM stocks").
			WithArgs(int32(102)).
			WillReturnRows(sqlmock.NewRows([]string{"total_quantity"}).AddRow(5))
		mock.ExpectExec("UPDATE stocks SET total_quantity = total_quantity -").
			WithArgs(int32(102), int32(3), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO stock_movements").
			WithArgs(int32(102), int32(51), int32(3), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err = repo.DeductSales(ctx, 51, lines)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Counter too low rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewStockRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT total_quantity FROM stocks").
			WithArgs(int32(102)).
			WillReturnRows(sqlmock.NewRows([]string{"total_quantity"}).AddRow(2))
		mock.ExpectRollback()

		err = repo.DeductSales(ctx, 51, lines)
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStockRepository_ReleaseByOrder(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := postgres.NewStockRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT product_id, quantity FROM stock_movements").
		WithArgs(int32(51)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).AddRow(102, 3))
	mock.ExpectExec(`UPDATE stocks SET total_quantity = total_quantity \+`).
		WithArgs(int32(102), int32(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE stock_movements SET deleted_on").
		WithArgs(int32(51), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err = repo.ReleaseByOrder(ctx, 51)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
