package http

import (
	"net/http"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/security"
	"rentmart-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the router needs.
type Services struct {
	Catalog      service.CatalogService
	Availability service.AvailabilityService
	Cart         service.CartService
	Checkout     service.CheckoutService
	Orders       service.OrderService
	Invoices     service.InvoiceService
	Settlement   service.SettlementService
}

// NewRouter wires the full API surface. Product reads are public; vendor and
// customer route groups sit behind the auth middleware plus a role gate.
func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	products := NewProductHandler(svcs.Catalog, svcs.Availability)
	carts := NewCartHandler(svcs.Cart, svcs.Checkout)
	orders := NewOrderHandler(svcs.Orders, svcs.Settlement)
	invoices := NewInvoiceHandler(svcs.Invoices)

	r := mux.NewRouter()
	r.Use(RequestLogging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public reads.
	api.HandleFunc("/products/{id:[0-9]+}", products.Get).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}/availability", products.Availability).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(tokens))

	// Order reads are shared: the service checks the caller is a party.
	authed.HandleFunc("/orders/{id:[0-9]+}", orders.Get).Methods(http.MethodGet)

	vendor := authed.NewRoute().Subrouter()
	vendor.Use(RequireRole(domain.RoleVendor))
	vendor.HandleFunc("/vendor/products", products.Create).Methods(http.MethodPost)
	vendor.HandleFunc("/vendor/products", products.ListMine).Methods(http.MethodGet)
	vendor.HandleFunc("/vendor/products/{id:[0-9]+}", products.Update).Methods(http.MethodPut)
	vendor.HandleFunc("/vendor/products/{id:[0-9]+}", products.Delete).Methods(http.MethodDelete)
	vendor.HandleFunc("/vendor/products/{id:[0-9]+}/stock", products.AdjustStock).Methods(http.MethodPost)
	vendor.HandleFunc("/vendor/orders", orders.ListVendorOrders).Methods(http.MethodGet)
	vendor.HandleFunc("/vendor/orders/{id:[0-9]+}/status", orders.UpdateStatus).Methods(http.MethodPatch)
	vendor.HandleFunc("/vendor/orders/{id:[0-9]+}/return-summary", orders.ReturnSummary).Methods(http.MethodPost)
	vendor.HandleFunc("/vendor/invoices", invoices.Create).Methods(http.MethodPost)
	vendor.HandleFunc("/vendor/invoices/{id:[0-9]+}/status", invoices.UpdateStatus).Methods(http.MethodPatch)
	vendor.HandleFunc("/vendor/payments", invoices.RecordPayment).Methods(http.MethodPost)

	customer := authed.NewRoute().Subrouter()
	customer.Use(RequireRole(domain.RoleCustomer))
	customer.HandleFunc("/cart", carts.List).Methods(http.MethodGet)
	customer.HandleFunc("/cart/lines", carts.UpsertLine).Methods(http.MethodPut)
	customer.HandleFunc("/cart/lines/{productId:[0-9]+}", carts.RemoveLine).Methods(http.MethodDelete)
	customer.HandleFunc("/cart/checkout", carts.Checkout).Methods(http.MethodPost)
	customer.HandleFunc("/my/orders", orders.ListCustomerOrders).Methods(http.MethodGet)

	return r
}
