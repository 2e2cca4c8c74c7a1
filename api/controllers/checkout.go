package controllers

import (
	"net/http"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/middleware"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/responses"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/validators"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/checkout"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
)

type quoteResponse struct {
	Success         bool                     `json:"success"`
	Totals          pricing.Totals           `json:"totals"`
	ShippingOptions []pricing.ShippingOption `json:"shippingOptions"`
}

type checkoutResponse struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"orderId"`
	Notice  string `json:"notice,omitempty"`
}

// CheckoutQuote prices a cart the same way checkout will.
func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout service"))
			return
		}

		var req checkout.QuoteRequest
		if err := validators.DecodeJSON(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		totals, err := svc.Quote(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quoteResponse{
			Success:         true,
			Totals:          totals,
			ShippingOptions: pricing.ShippingOptions(),
		})
	}
}

// CheckoutSubmit places an order from the checkout form. The client id is
// optional here; without it no client state is recorded.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout service"))
			return
		}

		var req checkout.Request
		if err := validators.DecodeJSON(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), middleware.ClientIDFromContext(r.Context()), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutResponse{Success: true, OrderID: result.OrderID, Notice: result.Notice})
	}
}

// CheckoutLastOrder backs the confirmation page.
func CheckoutLastOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout service"))
			return
		}
		clientID, err := requireClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		last, err := svc.LastOrder(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, last)
	}
}

func CheckoutSavedContact(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout service"))
			return
		}
		clientID, err := requireClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.SavedContact(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, contact)
	}
}

func CheckoutBuyNow(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout service"))
			return
		}
		clientID, err := requireClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.BuyNow(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, item)
	}
}

func CheckoutSetBuyNow(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout service"))
			return
		}
		clientID, err := requireClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var item orders.ItemInput
		if err := validators.DecodeJSON(r, &item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetBuyNow(r.Context(), clientID, item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAck(w, "")
	}
}
