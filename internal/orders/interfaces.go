package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/pagination"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	LastOrderNumber(ctx context.Context, prefix string) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
	ListRange(ctx context.Context, params pagination.Params) ([]models.Order, error)
	ListFiltered(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, error)
	SaveFields(ctx context.Context, order *models.Order, columns []string) error
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
}

// ListFilter narrows admin order queries. Empty or "all" statuses match any.
type ListFilter struct {
	OrderStatus   string
	PaymentStatus string
	Search        string
}
