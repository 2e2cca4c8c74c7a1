package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/repo"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/pagination"
)

const allStatuses = "all"

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: r.Base.WithTx(tx)}
}

// CreateOrder inserts the order together with its items.
func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Omit("Customer").Create(order).Error
}

// LastOrderNumber returns the highest order number starting with prefix, or ""
// when none exists. Numbers are compared by length first so "2280010" sorts
// above "228009".
func (r *repository) LastOrderNumber(ctx context.Context, prefix string) (string, error) {
	var order models.Order
	err := r.DB(ctx).
		Select("order_number").
		Where("order_number LIKE ?", prefix+"%").
		Order("LENGTH(order_number) DESC").
		Order("order_number DESC").
		Limit(1).
		Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return order.OrderNumber, nil
}

func (r *repository) preloaded(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.preloaded(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	if err := r.preloaded(ctx).Where("order_number = ?", number).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListRange returns orders newest first for the offset window.
func (r *repository) ListRange(ctx context.Context, params pagination.Params) ([]models.Order, error) {
	return r.ListFiltered(ctx, ListFilter{}, params)
}

// ListFiltered applies the admin filters and returns orders newest first.
func (r *repository) ListFiltered(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, error) {
	params = params.Normalize()
	query := r.preloaded(ctx).Model(&models.Order{})
	if status := strings.TrimSpace(filter.OrderStatus); status != "" && status != allStatuses {
		query = query.Where("orders.order_status = ?", status)
	}
	if status := strings.TrimSpace(filter.PaymentStatus); status != "" && status != allStatuses {
		query = query.Where("orders.payment_status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.
			Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("(LOWER(customers.name) LIKE ? ESCAPE '\\' OR orders.order_number LIKE ? ESCAPE '\\')", like, like)
	}

	var orders []models.Order
	err := query.
		Order("orders.created_at DESC").
		Order("orders.order_number DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// SaveFields writes the named columns of order. Associations are never saved
// here; items go through ReplaceItems.
func (r *repository) SaveFields(ctx context.Context, order *models.Order, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	row := *order
	row.Customer = models.Customer{}
	row.Items = nil
	res := r.DB(ctx).Model(&row).Select(columns).Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	order.UpdatedAt = row.UpdatedAt
	return nil
}

// ReplaceItems swaps the order's items for the given set, keeping item keys.
func (r *repository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	db := r.DB(ctx)
	if err := db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].OrderID = orderID
		items[i].Position = i
	}
	return db.Create(&items).Error
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
