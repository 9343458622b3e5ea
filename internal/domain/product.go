package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a vendor-owned item that customers rent or purchase.
// PricePerDay is the canonical unit price; the other tiers are optional.
type Product struct {
	ID              int32           `json:"id"`
	VendorID        int32           `json:"vendor_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	PricePerHour    decimal.Decimal `json:"price_per_hour"`
	PricePerDay     decimal.Decimal `json:"price_per_day"`
	PricePerWeek    decimal.Decimal `json:"price_per_week"`
	PricePerMonth   decimal.Decimal `json:"price_per_month"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	TaxPct          decimal.Decimal `json:"tax_pct"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	IsAvailable     bool            `json:"is_available"`
	IsPublished     bool            `json:"is_published"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
	DeletedOn       *time.Time      `json:"deleted_on,omitempty"`
}
