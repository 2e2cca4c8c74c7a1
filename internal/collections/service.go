package collections

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	dbpkg "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/slug"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

const (
	MsgNotFound      = "Collection not found"
	MsgDuplicateSlug = "A collection with this slug already exists"

	slugConstraint = "ux_collections_slug"
	slugColumn     = "collections.slug"
)

// CreateInput is the admin create body.
type CreateInput struct {
	Title       string `json:"title" validate:"required,min=2,max=50"`
	Slug        string `json:"slug" validate:"required,max=96"`
	Image       string `json:"image" validate:"required"`
	Description string `json:"description" validate:"max=500"`
}

// Patch is a partial update; nil fields are left alone.
type Patch struct {
	Title       *string `json:"title" validate:"omitnil,min=2,max=50"`
	Slug        *string `json:"slug" validate:"omitnil,min=1,max=96"`
	Image       *string `json:"image" validate:"omitnil,min=1"`
	Description *string `json:"description" validate:"omitnil,max=500"`
}

// ParsePatch decodes and validates a raw partial update. The slug is
// normalized before validation so one made only of symbols is rejected.
func ParsePatch(raw map[string]any) (Patch, error) {
	if value, ok := raw["slug"].(string); ok {
		raw["slug"] = slug.Make(value)
	}
	var patch Patch
	if err := validation.DecodePatch(raw, &patch); err != nil {
		return Patch{}, err
	}
	return patch, nil
}

func (p Patch) columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Slug != nil {
		cols["slug"] = slug.Make(*p.Slug)
	}
	if p.Image != nil {
		cols["image"] = strings.TrimSpace(*p.Image)
	}
	if p.Description != nil {
		cols["description"] = strings.TrimSpace(*p.Description)
	}
	return cols
}

// Service manages storefront collections.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Collection, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*models.Collection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Collection, error)
	GetBySlug(ctx context.Context, value string) (*models.Collection, error)
}

type service struct {
	repo Repository
}

// NewService builds the collections service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("collections repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Collection, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = slug.Make(input.Slug)
	input.Image = strings.TrimSpace(input.Image)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	collection := &models.Collection{
		Title:       input.Title,
		Slug:        input.Slug,
		Image:       input.Image,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.repo.Create(ctx, collection); err != nil {
		return nil, mapWriteError(err, "Failed to create collection")
	}
	return collection, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*models.Collection, error) {
	cols := patch.columns()
	if len(cols) == 0 {
		return nil, pkgerrors.Validation("no fields to update")
	}
	if err := s.repo.Update(ctx, id, cols); err != nil {
		return nil, mapWriteError(err, "Failed to update collection")
	}
	collection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapWriteError(err, "Failed to load collection")
	}
	return collection, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Failed to delete collection")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]models.Collection, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to load collections")
	}
	return rows, nil
}

func (s *service) GetBySlug(ctx context.Context, value string) (*models.Collection, error) {
	collection, err := s.repo.FindBySlug(ctx, slug.Make(value))
	if err != nil {
		return nil, mapWriteError(err, "Failed to load collection")
	}
	return collection, nil
}

func mapWriteError(err error, msg string) error {
	switch {
	case dbpkg.IsNotFound(err):
		return pkgerrors.NotFound(MsgNotFound)
	case dbpkg.IsUniqueViolation(err, slugConstraint, slugColumn):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, MsgDuplicateSlug)
	default:
		return pkgerrors.Internal(err, msg)
	}
}
