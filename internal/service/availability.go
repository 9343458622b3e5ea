package service

import (
	"context"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type availabilityService struct {
	stockRepo repository.StockRepository
}

func NewAvailabilityService(stockRepo repository.StockRepository) AvailabilityService {
	return &availabilityService{stockRepo: stockRepo}
}

// AvailableForWindow computes total quantity minus the sum of active RENTAL
// movements overlapping [start, end). Overlap is tested against the requested
// window, not against "now". A product without a stock row has zero available.
func (s *availabilityService) AvailableForWindow(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	if !start.Before(end) {
		return 0, domain.NewValidationError("rental window start must be before its end")
	}

	stock, err := s.stockRepo.GetByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	movements, err := s.stockRepo.ListActiveRentalsOverlapping(ctx, productID, start, end)
	if err != nil {
		return 0, err
	}

	var booked int32
	for _, m := range movements {
		booked += m.Quantity
	}
	return stock.TotalQuantity - booked, nil
}

// OnHandQuantity returns the physical counter; purchases are checked against
// it directly, with no time dimension.
func (s *availabilityService) OnHandQuantity(ctx context.Context, productID int32) (int32, error) {
	stock, err := s.stockRepo.GetByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return stock.TotalQuantity, nil
}

func (s *availabilityService) IsAvailable(ctx context.Context, productID int32, start, end time.Time, quantity int32) (bool, error) {
	if quantity <= 0 {
		return false, domain.NewValidationError("requested quantity must be positive")
	}
	available, err := s.AvailableForWindow(ctx, productID, start, end)
	if err != nil {
		return false, err
	}
	return available >= quantity, nil
}

func (s *availabilityService) IsPurchasable(ctx context.Context, productID int32, quantity int32) (bool, error) {
	if quantity <= 0 {
		return false, domain.NewValidationError("requested quantity must be positive")
	}
	onHand, err := s.OnHandQuantity(ctx, productID)
	if err != nil {
		return false, err
	}
	return onHand >= quantity, nil
}
