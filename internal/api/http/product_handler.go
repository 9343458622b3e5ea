package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// ProductHandler exposes vendor catalog management and public product reads.
type ProductHandler struct {
	catalog      service.CatalogService
	availability service.AvailabilityService
}

func NewProductHandler(catalog service.CatalogService, availability service.AvailabilityService) *ProductHandler {
	return &ProductHandler{catalog: catalog, availability: availability}
}

type productRequest struct {
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
}

func (req *productRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:            req.Name,
		Description:     req.Description,
		PricePerHour:    req.PricePerHour,
		PricePerDay:     req.PricePerDay,
		PricePerWeek:    req.PricePerWeek,
		PricePerMonth:   req.PricePerMonth,
		DiscountPct:     req.DiscountPct,
		TaxPct:          req.TaxPct,
		SecurityDeposit: req.SecurityDeposit,
		IsAvailable:     req.IsAvailable,
		IsPublished:     req.IsPublished,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	product := req.toDomain()
	if err := h.catalog.AddProduct(r.Context(), claims.UserID, product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	product := req.toDomain()
	product.ID = id
	if err := h.catalog.UpdateProduct(r.Context(), claims.UserID, product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	page, pageSize := pagination(r)

	products, total, err := h.catalog.ListVendorProducts(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products":    products,
		"total_count": total,
	})
}

type stockAdjustmentRequest struct {
	Quantity int32               `json:"quantity"`
	Type     domain.MovementType `json:"type"`
}

func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req stockAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	stock, err := h.catalog.AdjustStock(r.Context(), claims.UserID, id, req.Quantity, req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stock)
}

// Availability answers "how many units are free" for a product, either over a
// rental window (start/end query params, RFC 3339) or on hand when absent.
func (h *ProductHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	var available int32
	if startParam == "" && endParam == "" {
		available, err = h.availability.OnHandQuantity(r.Context(), id)
	} else {
		start, perr := parseTimeParam("start", startParam)
		if perr != nil {
			writeError(w, perr)
			return
		}
		end, perr := parseTimeParam("end", endParam)
		if perr != nil {
			writeError(w, perr)
			return
		}
		available, err = h.availability.AvailableForWindow(r.Context(), id, start, end)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": id,
		"available":  available,
	})
}

func parseTimeParam(name, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("invalid %s parameter, want RFC 3339", name)
	}
	return t, nil
}

func pathInt32(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, domain.NewValidationError("invalid %s %q", name, raw)
	}
	return int32(v), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
