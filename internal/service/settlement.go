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

type settlementService struct {
	orderRepo   repository.OrderRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewSettlementService(
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) SettlementService {
	return &settlementService{
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

// CalculateReturn settles a rental order at return time. It sums the order's
// invoiced grand totals, recorded payments, and line deposits, charges a late
// fee per overdue day, and reports the net amount owed. Invoices are marked
// COMPLETED only after the summary is fully computed.
func (s *settlementService) CalculateReturn(ctx context.Context, vendorID, orderID int32) (*domain.ReturnSummary, error) {
	logger.EnterMethod("settlementService.CalculateReturn", "vendor_id", vendorID, "order_id", orderID)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}
	if !order.IsService {
		return nil, domain.NewValidationError("order %d is a purchase; only rental orders settle on return", orderID)
	}

	invoices, err := s.invoiceRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	grandTotal := decimal.Zero
	for _, inv := range invoices {
		grandTotal = grandTotal.Add(inv.GrandTotal)
	}

	payments, err := s.paymentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.AmountPaid)
	}

	now := time.Now()
	totalDeposit := decimal.Zero
	totalLateFee := decimal.Zero
	for _, d := range order.Details {
		totalDeposit = totalDeposit.Add(d.DepositTotal)

		if d.EndDate == nil || !d.EndDate.Before(now) {
			continue
		}
		// Charge at the unit price the order was struck at, not today's
		// catalog price. The line must also settle after the product is
		// soft-deleted.
		days := lateDays(*d.EndDate, now)
		fee := d.UnitPrice.
			Mul(decimal.NewFromInt32(d.Quantity)).
			Mul(decimal.NewFromInt32(days))
		totalLateFee = totalLateFee.Add(fee)
	}

	summary := &domain.ReturnSummary{
		OrderID:      orderID,
		GrandTotal:   grandTotal,
		TotalPaid:    totalPaid,
		TotalDeposit: totalDeposit,
		TotalLateFee: totalLateFee,
		FinalPayment: totalDeposit.Add(totalPaid).Sub(grandTotal).Sub(totalLateFee),
	}

	if err := s.invoiceRepo.MarkCompletedByOrder(ctx, orderID); err != nil {
		return nil, err
	}

	s.notifySettlement(ctx, order, summary)

	logger.ExitMethod("settlementService.CalculateReturn", "order_id", orderID, "final_payment", summary.FinalPayment)
	return summary, nil
}

func (s *settlementService) notifySettlement(ctx context.Context, order *domain.SalesOrder, summary *domain.ReturnSummary) {
	customer, err := s.userRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		logger.Warn("skipping settlement notification, customer lookup failed", "customer_id", order.CustomerID, "error", err)
		return
	}
	if err := s.emailSvc.SendReturnSettlementNotification(ctx, customer.Email, order.ID, summary.FinalPayment); err != nil {
		logger.Warn("settlement notification failed", "order_id", order.ID, "error", err)
	}
}

// lateDays counts overdue days from the rental end to now, any partial day
// rounding up.
func lateDays(end, now time.Time) int32 {
	return int32(math.Ceil(now.Sub(end).Hours() / 24))
}
