package edit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
)

// NoChangesNotice is returned when the edit touched no field.
const NoChangesNotice = "No changes to update"

type orderStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Patch(ctx context.Context, id uuid.UUID, patch orders.OrderPatch, actor *outbox.ActorRef) (*models.Order, error)
}

type customerStore interface {
	Patch(ctx context.Context, id uuid.UUID, patch customers.Patch, actor *outbox.ActorRef) error
}

// Outcome reports one dispatched patch.
type Outcome struct {
	Fields  []string `json:"fields"`
	Applied bool     `json:"applied"`
	Error   string   `json:"error,omitempty"`
}

// Result describes what an edit did. Order reflects only the patches that
// were applied.
type Result struct {
	Notice        string            `json:"notice,omitempty"`
	Order         *orders.OrderView `json:"order,omitempty"`
	OrderPatch    *Outcome          `json:"orderPatch,omitempty"`
	CustomerPatch *Outcome          `json:"customerPatch,omitempty"`
}

// Applied reports whether at least one patch landed.
func (r Result) Applied() bool {
	return (r.OrderPatch != nil && r.OrderPatch.Applied) || (r.CustomerPatch != nil && r.CustomerPatch.Applied)
}

// Service applies admin order edits.
type Service interface {
	Apply(ctx context.Context, orderID uuid.UUID, req Request, actor *outbox.ActorRef) (*Result, error)
}

type service struct {
	orders    orderStore
	customers customerStore
	logg      *logger.Logger
}

// NewService builds the edit service.
func NewService(orderSvc orderStore, customerSvc customerStore, logg *logger.Logger) (Service, error) {
	if orderSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if customerSvc == nil {
		return nil, fmt.Errorf("customers service required")
	}
	return &service{orders: orderSvc, customers: customerSvc, logg: logg}, nil
}

// Apply compiles the edit and dispatches the order and customer patches
// independently. The returned error combines every failed dispatch; the
// result is still populated when only one side failed.
func (s *service) Apply(ctx context.Context, orderID uuid.UUID, req Request, actor *outbox.ActorRef) (*Result, error) {
	original, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view := orders.NewOrderView(*original)

	cmds, err := Commands(view, req.Form, req.Dirty)
	if err != nil {
		return nil, err
	}
	if len(cmds) == 0 {
		return &Result{Notice: NoChangesNotice, Order: &view}, nil
	}
	plan, err := Compile(cmds)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var dispatchErr error

	if plan.Customer != nil {
		outcome := &Outcome{Fields: plan.Customer.Fields()}
		if err := s.customers.Patch(ctx, original.CustomerID, *plan.Customer, actor); err != nil {
			outcome.Error = pkgerrors.PublicMessage(asTyped(err, "Failed to update customer"))
			dispatchErr = multierr.Append(dispatchErr, fmt.Errorf("customer patch: %w", err))
		} else {
			outcome.Applied = true
		}
		result.CustomerPatch = outcome
	}

	if plan.Order != nil {
		outcome := &Outcome{Fields: plan.Order.Fields()}
		if _, err := s.orders.Patch(ctx, orderID, *plan.Order, actor); err != nil {
			outcome.Error = pkgerrors.PublicMessage(asTyped(err, orders.MsgUpdateFailed))
			dispatchErr = multierr.Append(dispatchErr, fmt.Errorf("order patch: %w", err))
		} else {
			outcome.Applied = true
		}
		result.OrderPatch = outcome
	}

	merged := view
	if result.Applied() {
		if current, err := s.orders.Get(ctx, orderID); err == nil {
			merged = orders.NewOrderView(*current)
		} else if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "reload after order edit failed")
		}
	}
	result.Order = &merged

	if dispatchErr != nil && s.logg != nil {
		for _, e := range multierr.Errors(dispatchErr) {
			s.logg.Error(ctx, "order edit patch failed", e)
		}
	}
	return result, dispatchErr
}

func asTyped(err error, fallback string) *pkgerrors.Error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Internal(err, fallback)
}
