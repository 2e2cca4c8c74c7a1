package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/middleware"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/checkout"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
)

func TestCheckoutQuote(t *testing.T) {
	svc := stubCheckout{quoteFn: func(ctx context.Context, req checkout.QuoteRequest) (pricing.Totals, error) {
		if req.DiscountCode != "SAVE10" || len(req.Items) != 1 {
			t.Fatalf("unexpected request %+v", req)
		}
		return pricing.Totals{
			Subtotal:    decimal.NewFromInt(2000),
			TotalAmount: decimal.NewFromInt(2000),
			Notice:      pricing.InvalidDiscountNotice,
		}, nil
	}}

	body := `{"items":[{"productId":"p1","title":"Aura","price":1000,"quantity":2}],"shippingMethod":"Free Delivery","discountCode":"SAVE10"}`
	resp := httptest.NewRecorder()
	CheckoutQuote(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/checkout/quote", strings.NewReader(body)))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var out quoteResponse
	decodeBody(t, resp, &out)
	if !out.Totals.TotalAmount.Equal(decimal.NewFromInt(2000)) || out.Totals.Notice != pricing.InvalidDiscountNotice {
		t.Fatalf("unexpected totals %+v", out.Totals)
	}
	if len(out.ShippingOptions) == 0 {
		t.Fatalf("expected shipping options")
	}
}

func TestCheckoutSubmitPassesClientID(t *testing.T) {
	svc := stubCheckout{checkoutFn: func(ctx context.Context, clientID string, req checkout.Request) (*checkout.Result, error) {
		if clientID != "browser-1" {
			t.Fatalf("unexpected client id %q", clientID)
		}
		if req.Form.FirstName != "Ayesha" || len(req.Items) != 1 {
			t.Fatalf("unexpected request %+v", req)
		}
		return &checkout.Result{OrderID: 2280002}, nil
	}}

	body := `{"form":{"firstName":"Ayesha","phone":"03001234567","address":"House 12","city":"Lahore","province":"Punjab","shippingMethod":"Free Delivery","paymentMethod":"Bank Transfer","billingSameAsShipping":true},"items":[{"productId":"p1","title":"Aura","price":1000,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req = req.WithContext(middleware.WithClientID(req.Context(), "browser-1"))
	resp := httptest.NewRecorder()
	CheckoutSubmit(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var out checkoutResponse
	decodeBody(t, resp, &out)
	if !out.Success || out.OrderID != 2280002 {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestCheckoutSubmitEmptyCart(t *testing.T) {
	svc := stubCheckout{checkoutFn: func(context.Context, string, checkout.Request) (*checkout.Result, error) {
		return nil, pkgerrors.Validation(checkout.MsgEmptyCart)
	}}
	resp := httptest.NewRecorder()
	CheckoutSubmit(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"form":{},"items":[]}`)))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var body errorBody
	decodeBody(t, resp, &body)
	if body.Error.Message != checkout.MsgEmptyCart {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
}

func TestCheckoutClientStateRequiresClientID(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"last-order":    CheckoutLastOrder(stubCheckout{}, nil),
		"saved-contact": CheckoutSavedContact(stubCheckout{}, nil),
		"buy-now":       CheckoutBuyNow(stubCheckout{}, nil),
	}
	for name, h := range handlers {
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", name, resp.Code)
		}
	}
}

func TestCheckoutLastOrder(t *testing.T) {
	svc := stubCheckout{lastOrderFn: func(ctx context.Context, clientID string) (*checkout.LastOrder, error) {
		if clientID == "missing" {
			return nil, pkgerrors.NotFound("No recent order found")
		}
		return &checkout.LastOrder{OrderID: 2280003, Payload: orders.SubmitPayload{Name: "Ayesha"}}, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	CheckoutLastOrder(svc, nil).ServeHTTP(resp, req.WithContext(middleware.WithClientID(req.Context(), "browser-1")))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var out struct {
		Data checkout.LastOrder `json:"data"`
	}
	decodeBody(t, resp, &out)
	if out.Data.OrderID != 2280003 {
		t.Fatalf("unexpected order %+v", out.Data)
	}

	resp = httptest.NewRecorder()
	CheckoutLastOrder(svc, nil).ServeHTTP(resp, req.WithContext(middleware.WithClientID(req.Context(), "missing")))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCheckoutSavedContactEmpty(t *testing.T) {
	svc := stubCheckout{savedContactFn: func(context.Context, string) (*checkout.SavedContact, error) {
		return nil, nil
	}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	CheckoutSavedContact(svc, nil).ServeHTTP(resp, req.WithContext(middleware.WithClientID(req.Context(), "browser-1")))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"data":null`) {
		t.Fatalf("expected null data got %s", resp.Body.String())
	}
}

func TestCheckoutSetBuyNow(t *testing.T) {
	var saved orders.ItemInput
	svc := stubCheckout{setBuyNowFn: func(ctx context.Context, clientID string, item orders.ItemInput) error {
		saved = item
		return nil
	}}
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"productId":"p1","title":"Aura","price":1000,"quantity":1}`))
	resp := httptest.NewRecorder()
	CheckoutSetBuyNow(svc, nil).ServeHTTP(resp, req.WithContext(middleware.WithClientID(req.Context(), "browser-1")))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if saved.ProductID != "p1" || saved.Quantity != 1 {
		t.Fatalf("unexpected item %+v", saved)
	}
}

func TestCheckoutBuyNowStoreDown(t *testing.T) {
	svc := stubCheckout{buyNowFn: func(context.Context, string) (*orders.ItemInput, error) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("redis down"), "client state unavailable")
	}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	CheckoutBuyNow(svc, nil).ServeHTTP(resp, req.WithContext(middleware.WithClientID(req.Context(), "browser-1")))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
