package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const invoiceNumberAttempts = 5

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentRepository
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
	}
}

// CreateInvoice bills an approved order. Tax is accumulated per line from the
// product's tax percentage, the grand total is order value plus tax, and the
// invoice number is retried on a uniqueness collision with a fresh suffix.
func (s *invoiceService) CreateInvoice(ctx context.Context, vendorID, orderID int32) (*domain.SalesInvoice, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}
	if !order.Status.ConsumesStock() {
		return nil, domain.NewValidationError("order %d is %s; only approved or confirmed orders can be invoiced", orderID, order.Status)
	}

	tax := decimal.Zero
	for _, d := range order.Details {
		product, err := s.productRepo.GetByID(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
		tax = tax.Add(d.Subtotal.Mul(product.TaxPct).Div(decimal.NewFromInt(100)))
	}

	inv := &domain.SalesInvoice{
		OrderID:        orderID,
		DeliveryStatus: domain.DeliveryStatusProcessing,
		TaxAmount:      tax,
		GrandTotal:     order.TotalOrderValue.Add(tax),
	}

	for attempt := 0; attempt < invoiceNumberAttempts; attempt++ {
		inv.InvoiceNumber = newInvoiceNumber()
		err = s.invoiceRepo.Create(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			return nil, err
		}
		logger.Warn("invoice number collision, regenerating", "order_id", orderID, "invoice_number", inv.InvoiceNumber)
	}
	return nil, err
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, vendorID, invoiceID int32, newStatus domain.DeliveryStatus) (*domain.SalesInvoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}

	if !domain.CanTransitionDelivery(inv.DeliveryStatus, newStatus) {
		return nil, &domain.InvalidTransitionError{From: string(inv.DeliveryStatus), To: string(newStatus)}
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, invoiceID, newStatus); err != nil {
		return nil, err
	}
	inv.DeliveryStatus = newStatus
	return inv, nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, vendorID, orderID int32, amount decimal.Decimal, period, reference string) (*domain.PaymentEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("payment amount must be positive")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, domain.ErrUnauthorized
	}

	entry := &domain.PaymentEntry{
		OrderID:    orderID,
		AmountPaid: amount,
		Period:     period,
		Reference:  reference,
	}
	if err := s.paymentRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// newInvoiceNumber yields INV-yyyymmdd-XXXXXX, the suffix drawn from a random
// UUID so collisions are rare and resolvable by retrying.
func newInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), suffix)
}
