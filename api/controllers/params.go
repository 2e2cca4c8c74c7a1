package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/middleware"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
)

func uuidParam(r *http.Request, name, label string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return id, nil
}

// adminActor attributes outbox events to the authenticated admin.
func adminActor(r *http.Request) *outbox.ActorRef {
	actor := &outbox.ActorRef{
		Role:    middleware.RoleFromContext(r.Context()),
		Channel: "admin",
	}
	if id, err := uuid.Parse(middleware.AdminIDFromContext(r.Context())); err == nil {
		actor.AdminID = &id
	}
	return actor
}

func requireClientID(r *http.Request) (string, error) {
	id := middleware.ClientIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, middleware.ClientIDHeader+" header is required")
	}
	return id, nil
}

func unavailable(name string) error {
	return pkgerrors.New(pkgerrors.CodeInternal, name+" unavailable")
}
