package service

import (
	"context"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"
)

type orderService struct {
	orderRepo repository.OrderRepository
	stockRepo repository.StockRepository
	userRepo  repository.UserRepository
	emailSvc  EmailService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		stockRepo: stockRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

// UpdateOrderStatus drives the order state machine. Approval triggers the
// authoritative stock effect (reservation for rentals, deduction for
// purchases) and is idempotent: approving an already-approved order reserves
// nothing twice. Leaving a stock-consuming status for REJECTED or CANCELLED
// releases what the order held. The status is persisted only after the stock
// side effects committed.
func (s *orderService) UpdateOrderStatus(ctx context.Context, vendorID, orderID int32, newStatus domain.OrderStatus) (*domain.SalesOrder, error) {
	if !newStatus.IsValid() {
		return nil, domain.NewValidationError("unknown order status %q", newStatus)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}

	switch {
	// Orders already in a stock-consuming status hold their reservation;
	// re-approving one must not reserve again.
	case newStatus == domain.OrderStatusApproved && !order.Status.ConsumesStock():
		if err := s.applyApprovalStockEffects(ctx, order); err != nil {
			logger.Error("order approval aborted by stock check",
				"order_id", orderID, "vendor_id", vendorID, "error", err)
			return nil, err
		}
	case (newStatus == domain.OrderStatusRejected || newStatus == domain.OrderStatusCancelled) && order.Status.ConsumesStock():
		if err := s.stockRepo.ReleaseByOrder(ctx, orderID); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	s.notifyCustomer(ctx, order)
	return order, nil
}

// applyApprovalStockEffects runs the second, authoritative availability check.
// The cart-time check may be stale by the time a vendor approves.
func (s *orderService) applyApprovalStockEffects(ctx context.Context, order *domain.SalesOrder) error {
	lines := make([]domain.ReservationLine, 0, len(order.Details))
	for _, d := range order.Details {
		lines = append(lines, domain.ReservationLine{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
		})
	}

	if order.IsService {
		return s.stockRepo.ReserveRentals(ctx, order.ID, lines)
	}
	return s.stockRepo.DeductSales(ctx, order.ID, lines)
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID int32) (*domain.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != userID && order.CustomerID != userID {
		return nil, domain.ErrUnauthorized
	}
	return order, nil
}

func (s *orderService) ListVendorOrders(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error) {
	return s.orderRepo.ListByVendor(ctx, vendorID, status, page, pageSize)
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.SalesOrder, int32, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *orderService) notifyCustomer(ctx context.Context, order *domain.SalesOrder) {
	customer, err := s.userRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		logger.Warn("skipping status notification, customer lookup failed", "customer_id", order.CustomerID, "error", err)
		return
	}
	if err := s.emailSvc.SendOrderStatusNotification(ctx, customer.Email, order.ID, order.Status); err != nil {
		logger.Warn("status notification failed", "order_id", order.ID, "error", err)
	}
}
