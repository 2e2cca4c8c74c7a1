package controllers

import (
	"net/http"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/responses"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/validators"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/contact"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
)

const contactAckMessage = "Message sent successfully"

func ContactSubmit(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("contact service"))
			return
		}
		var input contact.Input
		if err := validators.DecodeJSON(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.Submit(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAck(w, contactAckMessage)
	}
}
