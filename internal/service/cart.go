package service

import (
	"context"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// UpsertLine adds a product to the cart or replaces the existing line for the
// same product. Rental lines must carry a valid window; purchase lines have
// any window stripped.
func (s *cartService) UpsertLine(ctx context.Context, customerID int32, line *domain.CartLine) error {
	if line.Quantity <= 0 {
		return domain.NewValidationError("quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, line.ProductID)
	if err != nil {
		return err
	}
	if !product.IsPublished || !product.IsAvailable {
		return domain.NewValidationError("product %d is not open for orders", line.ProductID)
	}

	if line.IsService {
		if line.StartDate == nil || line.EndDate == nil {
			return domain.NewValidationError("rental lines require start and end dates")
		}
		if !line.StartDate.Before(*line.EndDate) {
			return domain.NewValidationError("rental window must start before it ends")
		}
	} else {
		line.StartDate = nil
		line.EndDate = nil
	}

	line.CustomerID = customerID
	return s.cartRepo.Upsert(ctx, line)
}

func (s *cartService) ListLines(ctx context.Context, customerID int32) ([]domain.CartLine, error) {
	return s.cartRepo.ListByCustomer(ctx, customerID)
}

func (s *cartService) RemoveLine(ctx context.Context, customerID, productID int32) error {
	return s.cartRepo.DeleteLine(ctx, customerID, productID)
}
