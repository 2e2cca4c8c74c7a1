package controllers

import (
	"net/http"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/responses"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/validators"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/admins"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
)

// AdminLogin exchanges the dashboard credentials for an access token.
func AdminLogin(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("admin service"))
			return
		}
		var input admins.LoginInput
		if err := validators.DecodeJSON(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := svc.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, session)
	}
}
