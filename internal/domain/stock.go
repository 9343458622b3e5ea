package domain

import "time"

type MovementType string

const (
	MovementTypeRental MovementType = "RENTAL"
	MovementTypeSale   MovementType = "SALE"
	MovementTypeIn     MovementType = "IN"
	MovementTypeOut    MovementType = "OUT"
)

// Stock holds the physical quantity counter for a product.
// Only the stock repository writes it; TotalQuantity never goes negative.
type Stock struct {
	ProductID     int32     `json:"product_id"`
	TotalQuantity int32     `json:"total_quantity"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// StockMovement is one committed entry in the movement journal.
// RENTAL movements carry a half-open window [StartDate, EndDate) and consume
// availability only through overlap accounting; they never touch TotalQuantity.
// SALE/IN/OUT movements have no window. Soft-deleted movements never count.
type StockMovement struct {
	ID        int32        `json:"id"`
	ProductID int32        `json:"product_id"`
	OrderID   *int32       `json:"order_id,omitempty"`
	Type      MovementType `json:"type"`
	Quantity  int32        `json:"quantity"`
	StartDate *time.Time   `json:"start_date,omitempty"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
	CreatedOn time.Time    `json:"created_on"`
	DeletedOn *time.Time   `json:"deleted_on,omitempty"`
}

// ReservationLine is the per-product input to a check-and-reserve pass.
type ReservationLine struct {
	ProductID int32
	Quantity  int32
	StartDate *time.Time
	EndDate   *time.Time
}
