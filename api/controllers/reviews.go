package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/responses"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/validators"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/reviews"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
)

// adminReview adds the reviewer email that the public view hides.
type adminReview struct {
	reviews.View
	ReviewerEmail string `json:"reviewerEmail"`
}

type approvalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// ReviewSubmit accepts a shopper review for moderation.
func ReviewSubmit(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("reviews service"))
			return
		}
		var input reviews.SubmitInput
		if err := validators.DecodeJSON(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDataStatus(w, http.StatusCreated, reviews.NewView(*review))
	}
}

func ProductReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("reviews service"))
			return
		}
		productID := strings.TrimSpace(chi.URLParam(r, "productID"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		rows, err := svc.ListApproved(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, reviews.NewViews(rows))
	}
}

// AdminReviewsList lists reviews for moderation, optionally filtered by
// ?productId= and ?approved=true|false.
func AdminReviewsList(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("reviews service"))
			return
		}
		filter := reviews.Filter{ProductID: strings.TrimSpace(r.URL.Query().Get("productId"))}
		switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("approved"))) {
		case "", "all":
		case "true":
			v := true
			filter.Approved = &v
		case "false":
			v := false
			filter.Approved = &v
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "approved must be true, false or all"))
			return
		}

		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]adminReview, 0, len(rows))
		for _, row := range rows {
			out = append(out, adminReview{View: reviews.NewView(row), ReviewerEmail: row.ReviewerEmail})
		}
		responses.WriteData(w, out)
	}
}

func AdminReviewApproval(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("reviews service"))
			return
		}
		id, err := uuidParam(r, "reviewID", "review id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req approvalRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := svc.SetApproval(r.Context(), id, *req.Approved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, reviews.NewView(*review))
	}
}
