package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/redis"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

type kvEntry struct {
	value string
	ttl   time.Duration
}

type fakeKV struct {
	data   map[string]kvEntry
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]kvEntry{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	entry, ok := f.data[key]
	if !ok {
		return "", redis.ErrNil
	}
	return entry.value, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = kvEntry{value: value.(string), ttl: ttl}
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) ClientKey(clientID, record string) string {
	return "aw:client:" + clientID + ":" + record
}

// expireSession drops every key written with a ttl.
func (f *fakeKV) expireSession() {
	for key, entry := range f.data {
		if entry.ttl > 0 {
			delete(f.data, key)
		}
	}
}

type stubSubmitter struct {
	submitFn func(ctx context.Context, channel string, payload orders.SubmitPayload) (*orders.SubmitResult, error)
	calls    int
}

func (s *stubSubmitter) Submit(ctx context.Context, channel string, payload orders.SubmitPayload) (*orders.SubmitResult, error) {
	s.calls++
	return s.submitFn(ctx, channel, payload)
}

func validForm() Form {
	return Form{
		FirstName:             "Ayesha",
		LastName:              "Khan ",
		Email:                 "ayesha@example.com",
		Phone:                 "03001234567",
		Address:               "House 12, Street 4",
		Province:              "Sindh",
		City:                  "Karachi",
		ShippingMethod:        enums.ShippingMethodFree,
		PaymentMethod:         enums.PaymentMethodCOD,
		BillingSameAsShipping: boolPtr(true),
	}
}

func cartItems() []orders.ItemInput {
	return []orders.ItemInput{
		{ProductID: "p1", Title: "Lawn Suit", VariantKey: "m", Price: decimal.NewFromInt(3000), DiscountPrice: decimal.NewFromInt(2500), Quantity: 2},
		{ProductID: "p2", Title: "Dupatta", Price: decimal.NewFromInt(800), Quantity: 1},
	}
}

func TestFormValidate(t *testing.T) {
	require.NoError(t, validForm().Validate())

	form := validForm()
	form.FirstName = "A"
	form.Phone = "12345"
	form.Province = "Khyber Pakhtunkhwa"
	details := validation.Details(form.Validate())
	assert.Contains(t, details, "firstName")
	assert.Contains(t, details, "phone")
	assert.Contains(t, details, "province")
}

func TestFormRequiresBillingOnlyWhenDifferent(t *testing.T) {
	form := validForm()
	form.Billing = BillingForm{FirstName: "x"}
	require.NoError(t, form.Validate())

	form.BillingSameAsShipping = boolPtr(false)
	details := validation.Details(form.Validate())
	assert.Contains(t, details, "billing.firstName")
	assert.Contains(t, details, "billing.address")
	assert.Contains(t, details, "billing.city")
	assert.NotContains(t, details, "billing.phone")

	form.Billing = BillingForm{FirstName: "Bilal", Address: "Gulberg", City: "Lahore"}
	require.NoError(t, form.Validate())
}

func TestFormOmittedBillingFlagMeansSameAsShipping(t *testing.T) {
	body := `{"firstName":"Ayesha","phone":"03001234567","address":"House 12, Street 4","province":"Sindh","city":"Karachi","shippingMethod":"Free Delivery","paymentMethod":"Cash On Delivery (COD)"}`
	var form Form
	require.NoError(t, json.Unmarshal([]byte(body), &form))
	require.Nil(t, form.BillingSameAsShipping)

	assert.False(t, form.BillingDiffers())
	require.NoError(t, form.Validate())

	payload := BuildPayload(form, cartItems(), pricing.Totals{})
	assert.Nil(t, payload.BillingInfo)
}

func TestBuildPayload(t *testing.T) {
	form := validForm()
	items := cartItems()
	items[0].Key = "stale"
	totals := pricing.NewCalculator(nil).Quote(Lines(items), form.ShippingMethod, "")

	payload := BuildPayload(form, items, totals)

	assert.Equal(t, "Ayesha Khan", payload.Name)
	assert.Equal(t, "03001234567", payload.Number)
	assert.False(t, payload.Subscribe)
	assert.Nil(t, payload.BillingInfo)
	assert.True(t, decimal.NewFromInt(5800).Equal(payload.SubtotalAmount))
	assert.True(t, decimal.NewFromInt(5800).Equal(payload.TotalAmount))
	assert.Empty(t, payload.Items[0].Key)
	require.NoError(t, validation.Struct(payload))
}

func TestBuildPayloadCarriesDifferentBilling(t *testing.T) {
	form := validForm()
	form.LastName = ""
	form.BillingSameAsShipping = boolPtr(false)
	form.Billing = BillingForm{FirstName: "Bilal", LastName: "Ahmed", Address: "Gulberg", City: "Lahore", Phone: "03211234567"}

	payload := BuildPayload(form, cartItems(), pricing.Totals{})

	assert.Equal(t, "Ayesha", payload.Name)
	require.NotNil(t, payload.BillingInfo)
	assert.Equal(t, "Bilal Ahmed", payload.BillingInfo.Name)
	assert.Equal(t, "03211234567", payload.BillingInfo.Number)
}

func TestClientStoreSessionRecordsExpire(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store, err := NewClientStore(kv, time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.SaveSavedContact(ctx, "c1", SavedContact{FirstName: "Ayesha", City: "Karachi"}))
	require.NoError(t, store.SaveBuyNow(ctx, "c1", cartItems()[0]))
	require.NoError(t, store.SaveLastOrder(ctx, "c1", LastOrder{OrderID: 2280001}))

	assert.Equal(t, time.Duration(0), kv.data["aw:client:c1:saved_contact"].ttl)
	assert.Equal(t, time.Hour, kv.data["aw:client:c1:buy_now"].ttl)

	last, err := store.LoadLastOrder(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(2280001), last.OrderID)

	kv.expireSession()

	buyNow, err := store.LoadBuyNow(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, buyNow)
	last, err = store.LoadLastOrder(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, last)

	contact, err := store.LoadSavedContact(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.Equal(t, "Karachi", contact.City)

	require.NoError(t, store.ClearSavedContact(ctx, "c1"))
	contact, err = store.LoadSavedContact(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, contact)
}

func newCheckout(t *testing.T, submitter *stubSubmitter) (Service, *ClientStore, *fakeKV) {
	t.Helper()
	kv := newFakeKV()
	store, err := NewClientStore(kv, 0)
	require.NoError(t, err)
	svc, err := NewService(submitter, store, pricing.NewCalculator(nil), nil)
	require.NoError(t, err)
	return svc, store, kv
}

func TestCheckoutSubmitsAndRecordsClientState(t *testing.T) {
	ctx := context.Background()
	var got orders.SubmitPayload
	submitter := &stubSubmitter{submitFn: func(_ context.Context, channel string, payload orders.SubmitPayload) (*orders.SubmitResult, error) {
		assert.Equal(t, orders.ChannelCheckout, channel)
		got = payload
		return &orders.SubmitResult{OrderNumber: "2280007", Number: 2280007}, nil
	}}
	svc, store, _ := newCheckout(t, submitter)
	require.NoError(t, store.SaveBuyNow(ctx, "c1", cartItems()[1]))

	form := validForm()
	form.SaveInfo = true
	form.DiscountCode = "EID50"
	res, err := svc.Checkout(ctx, "c1", Request{Form: form, Items: cartItems()})
	require.NoError(t, err)

	assert.Equal(t, int64(2280007), res.OrderID)
	assert.Equal(t, pricing.InvalidDiscountNotice, res.Notice)
	assert.Empty(t, got.DiscountCode)
	assert.True(t, decimal.NewFromInt(5800).Equal(got.TotalAmount))

	last, err := svc.LastOrder(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(2280007), last.OrderID)
	assert.Equal(t, "Ayesha Khan", last.Payload.Name)

	contact, err := svc.SavedContact(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.Equal(t, "03001234567", contact.Number)

	buyNow, err := svc.BuyNow(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, buyNow)
}

func TestCheckoutClearsSavedContactOnOptOut(t *testing.T) {
	ctx := context.Background()
	submitter := &stubSubmitter{submitFn: func(context.Context, string, orders.SubmitPayload) (*orders.SubmitResult, error) {
		return &orders.SubmitResult{Number: 2280001}, nil
	}}
	svc, store, _ := newCheckout(t, submitter)
	require.NoError(t, store.SaveSavedContact(ctx, "c1", SavedContact{FirstName: "Old"}))

	_, err := svc.Checkout(ctx, "c1", Request{Form: validForm(), Items: cartItems()})
	require.NoError(t, err)

	contact, err := svc.SavedContact(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, contact)
}

func TestCheckoutRejectsBeforeSubmitting(t *testing.T) {
	ctx := context.Background()
	submitter := &stubSubmitter{submitFn: func(context.Context, string, orders.SubmitPayload) (*orders.SubmitResult, error) {
		t.Fatal("submit should not be called")
		return nil, nil
	}}
	svc, _, _ := newCheckout(t, submitter)

	_, err := svc.Checkout(ctx, "c1", Request{Form: validForm()})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, MsgEmptyCart, pkgerrors.As(err).Message())

	form := validForm()
	form.City = ""
	_, err = svc.Checkout(ctx, "c1", Request{Form: form, Items: cartItems()})
	require.Error(t, err)
	assert.Contains(t, validation.Details(err), "city")
	assert.Equal(t, 0, submitter.calls)
}

func TestCheckoutSubmitFailureLeavesClientStateAlone(t *testing.T) {
	ctx := context.Background()
	boom := pkgerrors.Internal(errors.New("db down"), "Failed to create order")
	submitter := &stubSubmitter{submitFn: func(context.Context, string, orders.SubmitPayload) (*orders.SubmitResult, error) {
		return nil, boom
	}}
	svc, _, kv := newCheckout(t, submitter)

	_, err := svc.Checkout(ctx, "c1", Request{Form: validForm(), Items: cartItems()})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, kv.data)

	_, err = svc.LastOrder(ctx, "c1")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCheckoutSurvivesClientStoreFailure(t *testing.T) {
	submitter := &stubSubmitter{submitFn: func(context.Context, string, orders.SubmitPayload) (*orders.SubmitResult, error) {
		return &orders.SubmitResult{Number: 2280003}, nil
	}}
	svc, _, kv := newCheckout(t, submitter)
	kv.setErr = errors.New("redis down")

	res, err := svc.Checkout(context.Background(), "c1", Request{Form: validForm(), Items: cartItems()})
	require.NoError(t, err)
	assert.Equal(t, int64(2280003), res.OrderID)
}

func TestQuote(t *testing.T) {
	svc, _, _ := newCheckout(t, &stubSubmitter{})

	totals, err := svc.Quote(context.Background(), QuoteRequest{Items: cartItems(), ShippingMethod: enums.ShippingMethodFast})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5800).Equal(totals.Subtotal))
	assert.True(t, decimal.NewFromInt(5800).Add(pricing.ShippingCost(enums.ShippingMethodFast)).Equal(totals.TotalAmount))

	_, err = svc.Quote(context.Background(), QuoteRequest{Items: []orders.ItemInput{{ProductID: "p1", Title: "x", Quantity: 0}}})
	assert.Contains(t, validation.Details(err), "items[0].quantity")
}

func TestSetBuyNowValidates(t *testing.T) {
	svc, _, _ := newCheckout(t, &stubSubmitter{})
	err := svc.SetBuyNow(context.Background(), "c1", orders.ItemInput{Title: "x", Quantity: 1})
	assert.Contains(t, validation.Details(err), "productId")

	require.NoError(t, svc.SetBuyNow(context.Background(), "c1", cartItems()[0]))
	item, err := svc.BuyNow(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "p1", item.ProductID)
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, &ClientStore{}, pricing.NewCalculator(nil), nil)
	require.Error(t, err)
	_, err = NewService(&stubSubmitter{}, nil, pricing.NewCalculator(nil), nil)
	require.Error(t, err)
	_, err = NewClientStore(nil, time.Hour)
	require.Error(t, err)
}

func boolPtr(v bool) *bool {
	return &v
}
