package service_test

import (
	"context"
	"regexp"
	"testing"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInvoiceFixture() (*MockInvoiceRepo, *MockOrderRepo, *MockProductRepo, *MockPaymentRepo, service.InvoiceService) {
	invoiceRepo := new(MockInvoiceRepo)
	orderRepo := new(MockOrderRepo)
	productRepo := new(MockProductRepo)
	paymentRepo := new(MockPaymentRepo)
	svc := service.NewInvoiceService(invoiceRepo, orderRepo, productRepo, paymentRepo)
	return invoiceRepo, orderRepo, productRepo, paymentRepo, svc
}

var invoiceNumberPattern = regexp.MustCompile(`^INV-\d{8}-[0-9A-F]{6}$`)

func TestInvoiceService_CreateInvoice(t *testing.T) {
	ctx := context.Background()
	vendorID := int32(10)
	orderID := int32(50)

	order := &domain.SalesOrder{
		ID:              orderID,
		VendorID:        vendorID,
		Status:          domain.OrderStatusApproved,
		TotalOrderValue: decimal.NewFromInt(1000),
		Details: []domain.SalesOrderDetail{
			{ProductID: 101, Subtotal: decimal.NewFromInt(600)},
			{ProductID: 102, Subtotal: decimal.NewFromInt(400)},
		},
	}

	t.Run("Accumulates tax per line", func(t *testing.T) {
		invoiceRepo, orderRepo, productRepo, _, svc := newInvoiceFixture()

		orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
		productRepo.On("GetByID", ctx, int32(101)).Return(&domain.Product{ID: 101, TaxPct: decimal.NewFromInt(10)}, nil)
		productRepo.On("GetByID", ctx, int32(102)).Return(&domain.Product{ID: 102, TaxPct: decimal.NewFromInt(5)}, nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.SalesInvoice")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.SalesInvoice).ID = 7
		}).Return(nil)

		inv, err := svc.CreateInvoice(ctx, vendorID, orderID)
		assert.NoError(t, err)
		// 600*10% + 400*5% = 80
		assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(80)), "tax = %s", inv.TaxAmount)
		assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(1080)))
		assert.Equal(t, domain.DeliveryStatusProcessing, inv.DeliveryStatus)
		assert.Regexp(t, invoiceNumberPattern, inv.InvoiceNumber)
	})

	t.Run("Retries on invoice number collision", func(t *testing.T) {
		invoiceRepo, orderRepo, productRepo, _, svc := newInvoiceFixture()

		orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
		productRepo.On("GetByID", ctx, mock.AnythingOfType("int32")).Return(&domain.Product{TaxPct: decimal.Zero}, nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.SalesInvoice")).Return(domain.ErrDuplicateInvoiceNumber).Twice()
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.SalesInvoice")).Return(nil).Once()

		inv, err := svc.CreateInvoice(ctx, vendorID, orderID)
		assert.NoError(t, err)
		assert.NotNil(t, inv)
		invoiceRepo.AssertNumberOfCalls(t, "Create", 3)
	})

	t.Run("Draft order cannot be invoiced", func(t *testing.T) {
		_, orderRepo, _, _, svc := newInvoiceFixture()

		draft := &domain.SalesOrder{ID: orderID, VendorID: vendorID, Status: domain.OrderStatusDraft}
		orderRepo.On("GetByID", ctx, orderID).Return(draft, nil)

		_, err := svc.CreateInvoice(ctx, vendorID, orderID)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Wrong vendor", func(t *testing.T) {
		_, orderRepo, _, _, svc := newInvoiceFixture()
		orderRepo.On("GetByID", ctx, orderID).Return(order, nil)

		_, err := svc.CreateInvoice(ctx, int32(99), orderID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestInvoiceService_UpdateInvoiceStatus(t *testing.T) {
	ctx := context.Background()
	vendorID := int32(10)

	order := &domain.SalesOrder{ID: 50, VendorID: vendorID, Status: domain.OrderStatusApproved}

	t.Run("Valid transition", func(t *testing.T) {
		invoiceRepo, orderRepo, _, _, svc := newInvoiceFixture()

		invoiceRepo.On("GetByID", ctx, int32(7)).Return(&domain.SalesInvoice{ID: 7, OrderID: 50, DeliveryStatus: domain.DeliveryStatusProcessing}, nil)
		orderRepo.On("GetByID", ctx, int32(50)).Return(order, nil)
		invoiceRepo.On("UpdateStatus", ctx, int32(7), domain.DeliveryStatusDispatched).Return(nil)

		inv, err := svc.UpdateInvoiceStatus(ctx, vendorID, 7, domain.DeliveryStatusDispatched)
		assert.NoError(t, err)
		assert.Equal(t, domain.DeliveryStatusDispatched, inv.DeliveryStatus)
	})

	t.Run("Skipping a step rejected", func(t *testing.T) {
		invoiceRepo, orderRepo, _, _, svc := newInvoiceFixture()

		invoiceRepo.On("GetByID", ctx, int32(7)).Return(&domain.SalesInvoice{ID: 7, OrderID: 50, DeliveryStatus: domain.DeliveryStatusProcessing}, nil)
		orderRepo.On("GetByID", ctx, int32(50)).Return(order, nil)

		_, err := svc.UpdateInvoiceStatus(ctx, vendorID, 7, domain.DeliveryStatusDelivered)
		var transitionErr *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Backwards transition rejected", func(t *testing.T) {
		invoiceRepo, orderRepo, _, _, svc := newInvoiceFixture()

		invoiceRepo.On("GetByID", ctx, int32(7)).Return(&domain.SalesInvoice{ID: 7, OrderID: 50, DeliveryStatus: domain.DeliveryStatusDelivered}, nil)
		orderRepo.On("GetByID", ctx, int32(50)).Return(order, nil)

		_, err := svc.UpdateInvoiceStatus(ctx, vendorID, 7, domain.DeliveryStatusProcessing)
		var transitionErr *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	vendorID := int32(10)

	order := &domain.SalesOrder{ID: 50, VendorID: vendorID, Status: domain.OrderStatusApproved}

	t.Run("Success", func(t *testing.T) {
		_, orderRepo, _, paymentRepo, svc := newInvoiceFixture()

		orderRepo.On("GetByID", ctx, int32(50)).Return(order, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.PaymentEntry")).Return(nil)

		entry, err := svc.RecordPayment(ctx, vendorID, 50, decimal.NewFromInt(250), "2026-03", "bank-ref-1")
		assert.NoError(t, err)
		assert.True(t, entry.AmountPaid.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, "2026-03", entry.Period)
	})

	t.Run("Non-positive amount rejected", func(t *testing.T) {
		_, _, _, paymentRepo, svc := newInvoiceFixture()

		_, err := svc.RecordPayment(ctx, vendorID, 50, decimal.Zero, "", "")
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
