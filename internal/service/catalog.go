package service

import (
	"context"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type catalogService struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

func NewCatalogService(productRepo repository.ProductRepository, stockRepo repository.StockRepository) CatalogService {
	return &catalogService{productRepo: productRepo, stockRepo: stockRepo}
}

func (s *catalogService) AddProduct(ctx context.Context, vendorID int32, p *domain.Product) error {
	if p.Name == "" {
		return domain.NewValidationError("product name is required")
	}
	if p.PricePerDay.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError("price per day must be positive")
	}
	if p.SecurityDeposit.LessThan(decimal.Zero) {
		return domain.NewValidationError("security deposit cannot be negative")
	}
	p.VendorID = vendorID
	return s.productRepo.Create(ctx, p)
}

func (s *catalogService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) UpdateProduct(ctx context.Context, vendorID int32, p *domain.Product) error {
	existing, err := s.productRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return domain.ErrUnauthorized
	}
	if p.PricePerDay.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError("price per day must be positive")
	}
	p.VendorID = vendorID
	return s.productRepo.Update(ctx, p)
}

func (s *catalogService) DeleteProduct(ctx context.Context, vendorID, productID int32) error {
	existing, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return domain.ErrUnauthorized
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *catalogService) ListVendorProducts(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	return s.productRepo.ListByVendor(ctx, vendorID, page, pageSize)
}

// AdjustStock applies a vendor's manual IN or OUT movement and returns the
// resulting counter.
func (s *catalogService) AdjustStock(ctx context.Context, vendorID, productID int32, quantity int32, moveType domain.MovementType) (*domain.Stock, error) {
	if moveType != domain.MovementTypeIn && moveType != domain.MovementTypeOut {
		return nil, domain.NewValidationError("stock adjustments must be IN or OUT movements")
	}
	if quantity <= 0 {
		return nil, domain.NewValidationError("adjustment quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.stockRepo.AdjustQuantity(ctx, productID, quantity, moveType); err != nil {
		return nil, err
	}
	return s.stockRepo.GetByProduct(ctx, productID)
}
