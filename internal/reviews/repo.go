package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/repo"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
)

// Filter narrows a review listing. Empty fields match everything.
type Filter struct {
	ProductID string
	Approved  *bool
}

// Repository defines persistence operations for reviews.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	List(ctx context.Context, filter Filter) ([]models.Review, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a reviews repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, review *models.Review) error {
	return r.DB(ctx).Create(review).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// List returns matching reviews newest first.
func (r *repository) List(ctx context.Context, filter Filter) ([]models.Review, error) {
	query := r.DB(ctx).Model(&models.Review{})
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	var rows []models.Review
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.UpdateColumns(ctx, &models.Review{}, id, map[string]any{"approved": approved})
}
