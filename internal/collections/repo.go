package collections

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/repo"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
)

// Repository defines persistence operations for collections.
type Repository interface {
	Create(ctx context.Context, collection *models.Collection) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	FindBySlug(ctx context.Context, slug string) (*models.Collection, error)
	List(ctx context.Context) ([]models.Collection, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a collections repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) Create(ctx context.Context, collection *models.Collection) error {
	return r.DB(ctx).Create(collection).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.DB(ctx).Where("id = ?", id).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	var collection models.Collection
	if err := r.DB(ctx).Where("slug = ?", slug).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *repository) List(ctx context.Context) ([]models.Collection, error) {
	var rows []models.Collection
	if err := r.DB(ctx).Order("created_at DESC").Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.UpdateColumns(ctx, &models.Collection{}, id, updates)
}

// Delete reports gorm.ErrRecordNotFound when nothing was removed.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Collection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
