package service

import (
	"context"
	"math"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type checkoutService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	availability AvailabilityService
	emailSvc     EmailService
}

func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	availability AvailabilityService,
	emailSvc EmailService,
) CheckoutService {
	return &checkoutService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		availability: availability,
		emailSvc:     emailSvc,
	}
}

type groupKey struct {
	vendorID  int32
	isService bool
}

// CreateOrdersFromCart turns the customer's cart into one order per
// (vendor, fulfillment type) group. Every line is availability-checked before
// anything is written; purchase orders deduct stock immediately; the cart is
// cleared only after every order succeeded.
func (s *checkoutService) CreateOrdersFromCart(ctx context.Context, customerID int32) ([]domain.SalesOrder, error) {
	logger.EnterMethod("checkoutService.CreateOrdersFromCart", "customer_id", customerID)

	lines, err := s.cartRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("checkoutService.CreateOrdersFromCart", err, "customer_id", customerID)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Step 1: validate every line before creating anything.
	products := make(map[int32]*domain.Product, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity for product %d must be positive", line.ProductID)
		}

		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		products[line.ProductID] = product

		if line.IsService {
			if line.StartDate == nil || line.EndDate == nil {
				return nil, domain.NewValidationError("rental line for product %d requires start and end dates", line.ProductID)
			}
			if !line.StartDate.Before(*line.EndDate) {
				return nil, domain.NewValidationError("rental window for product %d must start before it ends", line.ProductID)
			}
			available, err := s.availability.AvailableForWindow(ctx, line.ProductID, *line.StartDate, *line.EndDate)
			if err != nil {
				return nil, err
			}
			if available < line.Quantity {
				return nil, &domain.InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity, Available: available}
			}
		} else {
			onHand, err := s.availability.OnHandQuantity(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			if onHand < line.Quantity {
				return nil, &domain.InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity, Available: onHand}
			}
		}
	}

	// Step 2: partition by (vendor, fulfillment type), keeping first-seen
	// group order so output is deterministic.
	groups := make(map[groupKey][]domain.CartLine)
	var keys []groupKey
	for _, line := range lines {
		key := groupKey{vendorID: products[line.ProductID].VendorID, isService: line.IsService}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], line)
	}

	// Steps 3-5: price, materialize, apply purchase stock effects.
	var created []domain.SalesOrder
	for _, key := range keys {
		order := domain.SalesOrder{
			CustomerID:      customerID,
			VendorID:        key.vendorID,
			IsService:       key.isService,
			Status:          domain.OrderStatusApproved,
			TotalOrderValue: decimal.Zero,
		}
		// Rentals wait for an explicit vendor approval; purchases do not.
		if key.isService {
			order.Status = domain.OrderStatusDraft
		}

		for _, line := range groups[key] {
			product := products[line.ProductID]
			qty := decimal.NewFromInt32(line.Quantity)
			unitPrice := product.PricePerDay

			subtotal := unitPrice.Mul(qty)
			if line.IsService {
				days := rentalDays(*line.StartDate, *line.EndDate)
				subtotal = subtotal.Mul(decimal.NewFromInt32(days))
			}

			order.Details = append(order.Details, domain.SalesOrderDetail{
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				UnitPrice:    unitPrice,
				Subtotal:     subtotal,
				DepositTotal: product.SecurityDeposit.Mul(qty),
				StartDate:    line.StartDate,
				EndDate:      line.EndDate,
			})
			order.TotalOrderValue = order.TotalOrderValue.Add(subtotal)
		}

		if err := s.orderRepo.Create(ctx, &order); err != nil {
			s.compensate(ctx, created)
			logger.ExitMethodWithError("checkoutService.CreateOrdersFromCart", err, "customer_id", customerID)
			return nil, err
		}

		if !key.isService {
			reservations := make([]domain.ReservationLine, 0, len(order.Details))
			for _, d := range order.Details {
				reservations = append(reservations, domain.ReservationLine{ProductID: d.ProductID, Quantity: d.Quantity})
			}
			if err := s.stockRepo.DeductSales(ctx, order.ID, reservations); err != nil {
				// The failed order holds no stock yet; cancel it along with
				// everything created before it.
				s.compensate(ctx, append(created, order))
				logger.ExitMethodWithError("checkoutService.CreateOrdersFromCart", err, "customer_id", customerID, "order_id", order.ID)
				return nil, err
			}
		}

		created = append(created, order)
	}

	// Step 6: the cart survives any partial failure above; clear it only now.
	if err := s.cartRepo.ClearByCustomer(ctx, customerID); err != nil {
		logger.Error("checkout succeeded but cart clear failed", "customer_id", customerID, "error", err)
	}

	s.notifyVendors(ctx, customerID, created)

	logger.ExitMethod("checkoutService.CreateOrdersFromCart", "customer_id", customerID, "orders", len(created))
	return created, nil
}

// compensate unwinds orders created earlier in a checkout that failed partway:
// stock released, order cancelled. Best effort; failures are logged.
func (s *checkoutService) compensate(ctx context.Context, orders []domain.SalesOrder) {
	for _, o := range orders {
		if err := s.stockRepo.ReleaseByOrder(ctx, o.ID); err != nil {
			logger.Error("failed to release stock while unwinding checkout", "order_id", o.ID, "error", err)
		}
		if err := s.orderRepo.UpdateStatus(ctx, o.ID, domain.OrderStatusCancelled); err != nil {
			logger.Error("failed to cancel order while unwinding checkout", "order_id", o.ID, "error", err)
		}
	}
}

func (s *checkoutService) notifyVendors(ctx context.Context, customerID int32, orders []domain.SalesOrder) {
	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.Warn("skipping order notifications, customer lookup failed", "customer_id", customerID, "error", err)
		return
	}
	for _, o := range orders {
		vendor, err := s.userRepo.GetByID(ctx, o.VendorID)
		if err != nil {
			logger.Warn("skipping order notification, vendor lookup failed", "vendor_id", o.VendorID, "error", err)
			continue
		}
		if err := s.emailSvc.SendOrderPlacedNotification(ctx, vendor.Email, customer.Name, o.ID, o.TotalOrderValue); err != nil {
			logger.Warn("order notification failed", "order_id", o.ID, "error", err)
		}
	}
}

// rentalDays converts a half-open window into billable days, rounding any
// partial day up, with a one-day minimum.
func rentalDays(start, end time.Time) int32 {
	days := int32(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
