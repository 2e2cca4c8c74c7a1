package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/admins"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/checkout"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/collections"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/contact"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/edit"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/listing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/reviews"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type stubSubmitter struct {
	submitFn func(ctx context.Context, channel string, payload orders.SubmitPayload) (*orders.SubmitResult, error)
}

func (s stubSubmitter) Submit(ctx context.Context, channel string, payload orders.SubmitPayload) (*orders.SubmitResult, error) {
	return s.submitFn(ctx, channel, payload)
}

type stubCheckout struct {
	quoteFn        func(ctx context.Context, req checkout.QuoteRequest) (pricing.Totals, error)
	checkoutFn     func(ctx context.Context, clientID string, req checkout.Request) (*checkout.Result, error)
	lastOrderFn    func(ctx context.Context, clientID string) (*checkout.LastOrder, error)
	savedContactFn func(ctx context.Context, clientID string) (*checkout.SavedContact, error)
	buyNowFn       func(ctx context.Context, clientID string) (*orders.ItemInput, error)
	setBuyNowFn    func(ctx context.Context, clientID string, item orders.ItemInput) error
}

func (s stubCheckout) Quote(ctx context.Context, req checkout.QuoteRequest) (pricing.Totals, error) {
	return s.quoteFn(ctx, req)
}

func (s stubCheckout) Checkout(ctx context.Context, clientID string, req checkout.Request) (*checkout.Result, error) {
	return s.checkoutFn(ctx, clientID, req)
}

func (s stubCheckout) LastOrder(ctx context.Context, clientID string) (*checkout.LastOrder, error) {
	return s.lastOrderFn(ctx, clientID)
}

func (s stubCheckout) SavedContact(ctx context.Context, clientID string) (*checkout.SavedContact, error) {
	return s.savedContactFn(ctx, clientID)
}

func (s stubCheckout) BuyNow(ctx context.Context, clientID string) (*orders.ItemInput, error) {
	return s.buyNowFn(ctx, clientID)
}

func (s stubCheckout) SetBuyNow(ctx context.Context, clientID string, item orders.ItemInput) error {
	return s.setBuyNowFn(ctx, clientID, item)
}

type stubListing struct {
	rangeFn func(ctx context.Context, start, end int) ([]orders.OrderView, error)
	viewFn  func(ctx context.Context, adminID string, q listing.ViewQuery) (*listing.ViewPage, error)
}

func (s stubListing) Range(ctx context.Context, start, end int) ([]orders.OrderView, error) {
	return s.rangeFn(ctx, start, end)
}

func (s stubListing) View(ctx context.Context, adminID string, q listing.ViewQuery) (*listing.ViewPage, error) {
	return s.viewFn(ctx, adminID, q)
}

type stubOrders struct {
	getFn   func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	patchFn func(ctx context.Context, id uuid.UUID, patch orders.OrderPatch, actor *outbox.ActorRef) (*models.Order, error)
}

func (s stubOrders) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.getFn(ctx, id)
}

func (s stubOrders) Patch(ctx context.Context, id uuid.UUID, patch orders.OrderPatch, actor *outbox.ActorRef) (*models.Order, error) {
	return s.patchFn(ctx, id, patch, actor)
}

type stubCustomers struct {
	patchFn func(ctx context.Context, id uuid.UUID, patch customers.Patch, actor *outbox.ActorRef) error
}

func (s stubCustomers) Patch(ctx context.Context, id uuid.UUID, patch customers.Patch, actor *outbox.ActorRef) error {
	return s.patchFn(ctx, id, patch, actor)
}

type stubEdit struct {
	applyFn func(ctx context.Context, orderID uuid.UUID, req edit.Request, actor *outbox.ActorRef) (*edit.Result, error)
}

func (s stubEdit) Apply(ctx context.Context, orderID uuid.UUID, req edit.Request, actor *outbox.ActorRef) (*edit.Result, error) {
	return s.applyFn(ctx, orderID, req, actor)
}

type stubCollections struct {
	createFn func(ctx context.Context, input collections.CreateInput) (*models.Collection, error)
	updateFn func(ctx context.Context, id uuid.UUID, patch collections.Patch) (*models.Collection, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
	listFn   func(ctx context.Context) ([]models.Collection, error)
	slugFn   func(ctx context.Context, value string) (*models.Collection, error)
}

func (s stubCollections) Create(ctx context.Context, input collections.CreateInput) (*models.Collection, error) {
	return s.createFn(ctx, input)
}

func (s stubCollections) Update(ctx context.Context, id uuid.UUID, patch collections.Patch) (*models.Collection, error) {
	return s.updateFn(ctx, id, patch)
}

func (s stubCollections) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s stubCollections) List(ctx context.Context) ([]models.Collection, error) {
	return s.listFn(ctx)
}

func (s stubCollections) GetBySlug(ctx context.Context, value string) (*models.Collection, error) {
	return s.slugFn(ctx, value)
}

type stubReviews struct {
	submitFn   func(ctx context.Context, input reviews.SubmitInput) (*models.Review, error)
	approvedFn func(ctx context.Context, productID string) ([]models.Review, error)
	listFn     func(ctx context.Context, filter reviews.Filter) ([]models.Review, error)
	approveFn  func(ctx context.Context, id uuid.UUID, approved bool) (*models.Review, error)
}

func (s stubReviews) Submit(ctx context.Context, input reviews.SubmitInput) (*models.Review, error) {
	return s.submitFn(ctx, input)
}

func (s stubReviews) ListApproved(ctx context.Context, productID string) ([]models.Review, error) {
	return s.approvedFn(ctx, productID)
}

func (s stubReviews) List(ctx context.Context, filter reviews.Filter) ([]models.Review, error) {
	return s.listFn(ctx, filter)
}

func (s stubReviews) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Review, error) {
	return s.approveFn(ctx, id, approved)
}

type stubContact struct {
	submitFn func(ctx context.Context, input contact.Input) (*models.ContactMessage, error)
}

func (s stubContact) Submit(ctx context.Context, input contact.Input) (*models.ContactMessage, error) {
	return s.submitFn(ctx, input)
}

type stubAdmins struct {
	loginFn func(ctx context.Context, input admins.LoginInput) (*admins.Session, error)
}

func (s stubAdmins) Login(ctx context.Context, input admins.LoginInput) (*admins.Session, error) {
	return s.loginFn(ctx, input)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}
