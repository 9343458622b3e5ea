package http

import (
	"encoding/json"
	"net/http"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"

	"github.com/shopspring/decimal"
)

// InvoiceHandler exposes vendor invoicing and payment recording.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type createInvoiceRequest struct {
	OrderID int32 `json:"order_id"`
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	inv, err := h.invoices.CreateInvoice(r.Context(), claims.UserID, req.OrderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

type invoiceStatusRequest struct {
	Status domain.DeliveryStatus `json:"status"`
}

func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req invoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	inv, err := h.invoices.UpdateInvoiceStatus(r.Context(), claims.UserID, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type recordPaymentRequest struct {
	OrderID   int32           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	entry, err := h.invoices.RecordPayment(r.Context(), claims.UserID, req.OrderID, req.Amount, req.Period, req.Reference)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
