package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"
)

// CartHandler exposes the customer's shopping cart and checkout.
type CartHandler struct {
	cart     service.CartService
	checkout service.CheckoutService
}

func NewCartHandler(cart service.CartService, checkout service.CheckoutService) *CartHandler {
	return &CartHandler{cart: cart, checkout: checkout}
}

type cartLineRequest struct {
	ProductID int32      `json:"product_id"`
	Quantity  int32      `json:"quantity"`
	IsService bool       `json:"is_service"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (h *CartHandler) UpsertLine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req cartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	line := &domain.CartLine{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		IsService: req.IsService,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.cart.UpsertLine(r.Context(), claims.UserID, line); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	lines, err := h.cart.ListLines(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lines": lines})
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	productID, err := pathInt32(r, "productId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cart.RemoveLine(r.Context(), claims.UserID, productID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// Checkout converts the whole cart into orders. All-or-nothing: a failure on
// any line leaves the cart untouched and creates no orders.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	orders, err := h.checkout.CreateOrdersFromCart(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"orders": orders})
}
