package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

// MsgEmptyCart rejects a checkout before anything is priced.
const MsgEmptyCart = "Your cart is empty"

type orderSubmitter interface {
	Submit(ctx context.Context, channel string, payload orders.SubmitPayload) (*orders.SubmitResult, error)
}

// QuoteRequest asks for server-side totals of a cart.
type QuoteRequest struct {
	Items          []orders.ItemInput   `json:"items" validate:"dive"`
	ShippingMethod enums.ShippingMethod `json:"shippingMethod"`
	DiscountCode   string               `json:"discountCode" validate:"max=50"`
}

// Result is returned to the storefront after a successful checkout.
type Result struct {
	OrderID int64  `json:"orderId"`
	Notice  string `json:"notice,omitempty"`
}

// Service runs the storefront checkout and exposes the shopper's client
// state.
type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (pricing.Totals, error)
	Checkout(ctx context.Context, clientID string, req Request) (*Result, error)
	LastOrder(ctx context.Context, clientID string) (*LastOrder, error)
	SavedContact(ctx context.Context, clientID string) (*SavedContact, error)
	BuyNow(ctx context.Context, clientID string) (*orders.ItemInput, error)
	SetBuyNow(ctx context.Context, clientID string, item orders.ItemInput) error
}

type service struct {
	orders     orderSubmitter
	store      *ClientStore
	calculator pricing.Calculator
	logg       *logger.Logger
}

// NewService builds the checkout service.
func NewService(submitter orderSubmitter, store *ClientStore, calculator pricing.Calculator, logg *logger.Logger) (Service, error) {
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if store == nil {
		return nil, fmt.Errorf("client store required")
	}
	return &service{orders: submitter, store: store, calculator: calculator, logg: logg}, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (pricing.Totals, error) {
	if err := validation.Struct(req); err != nil {
		return pricing.Totals{}, err
	}
	return s.calculator.Quote(Lines(req.Items), req.ShippingMethod, req.DiscountCode), nil
}

// Checkout validates the form, prices the cart, submits the order and then
// records the shopper's client state. Client state failures are logged; the
// order has already been placed by then.
func (s *service) Checkout(ctx context.Context, clientID string, req Request) (*Result, error) {
	if len(req.Items) == 0 {
		return nil, pkgerrors.Validation(MsgEmptyCart)
	}
	if err := req.Form.Validate(); err != nil {
		return nil, err
	}

	totals := s.calculator.Quote(Lines(req.Items), req.Form.ShippingMethod, req.Form.DiscountCode)
	payload := BuildPayload(req.Form, req.Items, totals)

	res, err := s.orders.Submit(ctx, orders.ChannelCheckout, payload)
	if err != nil {
		return nil, err
	}

	clientID = strings.TrimSpace(clientID)
	if clientID != "" {
		s.record(ctx, clientID, req.Form, LastOrder{OrderID: res.Number, Payload: payload})
	}
	return &Result{OrderID: res.Number, Notice: totals.Notice}, nil
}

func (s *service) record(ctx context.Context, clientID string, form Form, last LastOrder) {
	if err := s.store.SaveLastOrder(ctx, clientID, last); err != nil {
		s.logError(ctx, "checkout.last_order_failed", err)
	}
	if err := s.store.ClearBuyNow(ctx, clientID); err != nil {
		s.logError(ctx, "checkout.buy_now_clear_failed", err)
	}

	var err error
	if form.SaveInfo {
		err = s.store.SaveSavedContact(ctx, clientID, SavedContact{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Address:   form.Address,
			Province:  form.Province,
			City:      form.City,
			Number:    form.Phone,
		})
	} else {
		err = s.store.ClearSavedContact(ctx, clientID)
	}
	if err != nil {
		s.logError(ctx, "checkout.saved_contact_failed", err)
	}
}

func (s *service) LastOrder(ctx context.Context, clientID string) (*LastOrder, error) {
	last, err := s.store.LoadLastOrder(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "client state unavailable")
	}
	if last == nil {
		return nil, pkgerrors.NotFound("No recent order found")
	}
	return last, nil
}

// SavedContact returns nil when the shopper has nothing saved.
func (s *service) SavedContact(ctx context.Context, clientID string) (*SavedContact, error) {
	contact, err := s.store.LoadSavedContact(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "client state unavailable")
	}
	return contact, nil
}

// BuyNow returns nil when no buy-now item is pending.
func (s *service) BuyNow(ctx context.Context, clientID string) (*orders.ItemInput, error) {
	item, err := s.store.LoadBuyNow(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "client state unavailable")
	}
	return item, nil
}

func (s *service) SetBuyNow(ctx context.Context, clientID string, item orders.ItemInput) error {
	if err := validation.Struct(item); err != nil {
		return err
	}
	if err := s.store.SaveBuyNow(ctx, clientID, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "client state unavailable")
	}
	return nil
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(s.logg.WithField(ctx, "component", "checkout"), msg, err)
}
