package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/middleware"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/responses"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/validators"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/edit"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/listing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/pagination"
)

const maxOrderOffset = 1_000_000

type orderReader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderPatcher interface {
	Patch(ctx context.Context, id uuid.UUID, patch orders.OrderPatch, actor *outbox.ActorRef) (*models.Order, error)
}

type customerPatcher interface {
	Patch(ctx context.Context, id uuid.UUID, patch customers.Patch, actor *outbox.ActorRef) error
}

type editResponse struct {
	Success bool `json:"success"`
	*edit.Result
}

// AdminOrdersRange returns orders [start, end) newest first.
func AdminOrdersRange(svc listing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("listing service"))
			return
		}

		start, err := validators.ParseQueryInt(r, "start", 0, 0, maxOrderOffset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryInt(r, "end", start+pagination.DefaultLimit, 0, maxOrderOffset+pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.Range(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, views)
	}
}

// AdminOrdersView returns one grouped, filtered page for the dashboard.
func AdminOrdersView(svc listing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("listing service"))
			return
		}

		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, maxOrderOffset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderStatus, err := validators.ParseQueryFilter(r, "orderStatus", func(v string) bool {
			return enums.OrderStatus(v).IsValid()
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		paymentStatus, err := validators.ParseQueryFilter(r, "paymentStatus", func(v string) bool {
			return enums.PaymentStatus(v).IsValid()
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.View(r.Context(), middleware.AdminIDFromContext(r.Context()), listing.ViewQuery{
			Offset:        offset,
			OrderStatus:   orderStatus,
			PaymentStatus: paymentStatus,
			Search:        validators.SanitizeString(r.URL.Query().Get("search"), 100),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, page)
	}
}

func AdminOrderGet(svc orderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("orders service"))
			return
		}
		id, err := uuidParam(r, "orderID", "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, orders.NewOrderView(*order))
	}
}

// AdminOrderPatch applies a raw field update to one order.
func AdminOrderPatch(svc orderPatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("orders service"))
			return
		}
		id, err := uuidParam(r, "orderID", "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := validators.DecodePatchBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch, err := orders.ParseOrderPatch(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.Patch(r.Context(), id, patch, adminActor(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAck(w, "")
	}
}

// AdminOrderEdit runs the dashboard edit form through the diff engine. When
// only one of the two patches fails the response is still 200 with the
// failure reported on that patch.
func AdminOrderEdit(svc edit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("edit service"))
			return
		}
		id, err := uuidParam(r, "orderID", "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req edit.Request
		if err := validators.DecodeJSON(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Apply(r.Context(), id, req, adminActor(r))
		if result == nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err != nil && !result.Applied() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Internal(err, orders.MsgUpdateFailed))
			return
		}
		responses.WriteSuccess(w, editResponse{Success: err == nil, Result: result})
	}
}

// AdminCustomerPatch applies a raw field update to one customer.
func AdminCustomerPatch(svc customerPatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("customers service"))
			return
		}
		id, err := uuidParam(r, "customerID", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := validators.DecodePatchBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch, err := customers.ParsePatch(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Patch(r.Context(), id, patch, adminActor(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAck(w, "")
	}
}
