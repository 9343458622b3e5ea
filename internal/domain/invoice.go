package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryStatus string

const (
	DeliveryStatusProcessing DeliveryStatus = "PROCESSING"
	DeliveryStatusDispatched DeliveryStatus = "DISPATCHED"
	DeliveryStatusDelivered  DeliveryStatus = "DELIVERED"
	DeliveryStatusCompleted  DeliveryStatus = "COMPLETED"
	DeliveryStatusReturned   DeliveryStatus = "RETURNED"
)

// Vendor-driven delivery updates follow a strict linear sequence. COMPLETED is
// set by return settlement only and RETURNED is terminal, so neither appears
// as a reachable target here.
var validDeliveryNext = map[DeliveryStatus]map[DeliveryStatus]bool{
	DeliveryStatusProcessing: {DeliveryStatusDispatched: true},
	DeliveryStatusDispatched: {DeliveryStatusDelivered: true},
	DeliveryStatusDelivered:  {},
	DeliveryStatusCompleted:  {},
	DeliveryStatusReturned:   {},
}

func CanTransitionDelivery(from, to DeliveryStatus) bool {
	return validDeliveryNext[from][to]
}

// SalesInvoice is created explicitly by the vendor after order approval.
// An order may carry several invoices.
type SalesInvoice struct {
	ID             int32           `json:"id"`
	OrderID        int32           `json:"order_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	DeliveryStatus DeliveryStatus  `json:"delivery_status"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	IsPaid         bool            `json:"is_paid"`
	CreatedOn      time.Time       `json:"created_on"`
	DeletedOn      *time.Time      `json:"deleted_on,omitempty"`
}

// PaymentEntry is an append-only record of an amount received against an
// order. Entries are never mutated; their sum is the order's amount paid.
type PaymentEntry struct {
	ID         int32           `json:"id"`
	OrderID    int32           `json:"order_id"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Period     string          `json:"period,omitempty"`
	Reference  string          `json:"reference,omitempty"`
	CreatedOn  time.Time       `json:"created_on"`
}

// ReturnSummary is the settlement of a finished order. FinalPayment keeps the
// sign convention: positive means a refund owed to the customer, negative an
// amount the customer still owes.
type ReturnSummary struct {
	OrderID      int32           `json:"order_id"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalDeposit decimal.Decimal `json:"total_deposit"`
	TotalLateFee decimal.Decimal `json:"total_late_fee"`
	FinalPayment decimal.Decimal `json:"final_payment"`
}
