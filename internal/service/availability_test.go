package service_test

import (
	"context"
	"testing"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityService_AvailableForWindow(t *testing.T) {
	ctx := context.Background()
	productID := int32(7)

	feb := func(day int) time.Time {
		return time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC)
	}

	t.Run("Subtracts overlapping bookings", func(t *testing.T) {
		stockRepo := new(MockStockRepo)
		svc := service.NewAvailabilityService(stockRepo)

		// 10 total, 6 booked over Feb 1-5. A request over Feb 3-10 sees only 4.
		booked := []domain.StockMovement{
			{ProductID: productID, Type: domain.MovementTypeRental, Quantity: 6},
		}
		stockRepo.On("GetByProduct", ctx, productID).Return(&domain.Stock{ProductID: productID, TotalQuantity: 10}, nil)
		stockRepo.On("ListActiveRentalsOverlapping", ctx, productID, feb(3), feb(10)).Return(booked, nil)

		available, err := svc.AvailableForWindow(ctx, productID, feb(3), feb(10))
		assert.NoError(t, err)
		assert.Equal(t, int32(4), available)

		ok, err := svc.IsAvailable(ctx, productID, feb(3), feb(10), 5)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Non overlapping window sees full stock", func(t *testing.T) {
		stockRepo := new(MockStockRepo)
		svc := service.NewAvailabilityService(stockRepo)

		stockRepo.On("GetByProduct", ctx, productID).Return(&domain.Stock{ProductID: productID, TotalQuantity: 10}, nil)
		stockRepo.On("ListActiveRentalsOverlapping", ctx, productID, feb(5), feb(10)).Return([]domain.StockMovement{}, nil)

		ok, err := svc.IsAvailable(ctx, productID, feb(5), feb(10), 9)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Inverted window rejected", func(t *testing.T) {
		stockRepo := new(MockStockRepo)
		svc := service.NewAvailabilityService(stockRepo)

		_, err := svc.AvailableForWindow(ctx, productID, feb(10), feb(3))
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Zero quantity rejected", func(t *testing.T) {
		stockRepo := new(MockStockRepo)
		svc := service.NewAvailabilityService(stockRepo)

		_, err := svc.IsAvailable(ctx, productID, feb(1), feb(2), 0)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestAvailabilityService_IsPurchasable(t *testing.T) {
	ctx := context.Background()
	productID := int32(7)

	stockRepo := new(MockStockRepo)
	svc := service.NewAvailabilityService(stockRepo)

	stockRepo.On("GetByProduct", ctx, productID).Return(&domain.Stock{ProductID: productID, TotalQuantity: 3}, nil)

	ok, err := svc.IsPurchasable(ctx, productID, 3)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsPurchasable(ctx, productID, 4)
	assert.NoError(t, err)
	assert.False(t, ok)
}
