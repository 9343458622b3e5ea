package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusSent      OrderStatus = "SENT"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusApproved,
		OrderStatusRejected, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// ConsumesStock reports whether an order in this status holds stock
// (a reservation for rentals, a deduction for purchases).
func (s OrderStatus) ConsumesStock() bool {
	return s == OrderStatusApproved || s == OrderStatusConfirmed
}

// SalesOrder aggregates one vendor + one fulfillment type for one customer.
// IsService marks a rental order; rental orders start in DRAFT and reserve
// stock on approval, purchase orders start APPROVED with stock already
// deducted.
type SalesOrder struct {
	ID              int32             `json:"id"`
	CustomerID      int32             `json:"customer_id"`
	VendorID        int32             `json:"vendor_id"`
	Status          OrderStatus       `json:"status"`
	PaymentPlan     string            `json:"payment_plan"`
	TotalOrderValue decimal.Decimal   `json:"total_order_value"`
	IsService       bool              `json:"is_service"`
	Details         []SalesOrderDetail `json:"details,omitempty"`
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
	DeletedOn       *time.Time        `json:"deleted_on,omitempty"`
}

// SalesOrderDetail is one product line of an order. Deposits are tracked per
// line and excluded from the order value.
type SalesOrderDetail struct {
	ID           int32           `json:"id"`
	OrderID      int32           `json:"order_id"`
	ProductID    int32           `json:"product_id"`
	Quantity     int32           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DepositTotal decimal.Decimal `json:"deposit_total"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
}
