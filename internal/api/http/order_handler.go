package http

import (
	"encoding/json"
	"net/http"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"
)

// OrderHandler exposes order reads, the vendor status transition endpoint and
// the return settlement.
type OrderHandler struct {
	orders     service.OrderService
	settlement service.SettlementService
}

func NewOrderHandler(orders service.OrderService, settlement service.SettlementService) *OrderHandler {
	return &OrderHandler{orders: orders, settlement: settlement}
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListVendorOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	page, pageSize := pagination(r)

	orders, total, err := h.orders.ListVendorOrders(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":      orders,
		"total_count": total,
	})
}

func (h *OrderHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	page, pageSize := pagination(r)

	orders, total, err := h.orders.ListCustomerOrders(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":      orders,
		"total_count": total,
	})
}

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), claims.UserID, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ReturnSummary(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.settlement.CalculateReturn(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
