package domain

import "time"

// CartLine is one customer+product entry in the shopping cart. IsService marks
// a rental line (time-boxed); purchase lines have no window. Lines are
// ephemeral: checkout or explicit removal destroys them.
type CartLine struct {
	ID         int32      `json:"id"`
	CustomerID int32      `json:"customer_id"`
	ProductID  int32      `json:"product_id"`
	Quantity   int32      `json:"quantity"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsService  bool       `json:"is_service"`
	AddedOn    time.Time  `json:"added_on"`
}
