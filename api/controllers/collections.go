package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/responses"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/validators"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/collections"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
)

type collectionResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newCollectionResponse(c models.Collection) collectionResponse {
	return collectionResponse{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Image:       c.Image,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func CollectionsList(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("collections service"))
			return
		}
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]collectionResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, newCollectionResponse(row))
		}
		responses.WriteData(w, out)
	}
}

func CollectionBySlug(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("collections service"))
			return
		}
		collection, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, newCollectionResponse(*collection))
	}
}

func AdminCollectionCreate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("collections service"))
			return
		}
		var input collections.CreateInput
		if err := validators.DecodeJSON(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		collection, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDataStatus(w, http.StatusCreated, newCollectionResponse(*collection))
	}
}

func AdminCollectionUpdate(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("collections service"))
			return
		}
		id, err := uuidParam(r, "collectionID", "collection id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		raw, err := validators.DecodePatchBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch, err := collections.ParsePatch(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		collection, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, newCollectionResponse(*collection))
	}
}

func AdminCollectionDelete(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("collections service"))
			return
		}
		id, err := uuidParam(r, "collectionID", "collection id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAck(w, "Collection deleted")
	}
}
