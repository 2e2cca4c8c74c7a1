package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
)

// Order is a confirmed purchase. OrderNumber is the human facing sequential
// id ("2280001") and is unique.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber    string               `gorm:"column:order_number;not null;uniqueIndex:ux_orders_order_number"`
	CustomerID     uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	Customer       Customer             `gorm:"foreignKey:CustomerID"`
	Items          []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingMethod enums.ShippingMethod `gorm:"column:shipping_method;type:text;not null"`
	ShippingCost   decimal.Decimal      `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0"`
	PaymentMethod  enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus  enums.PaymentStatus  `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	OrderStatus    enums.OrderStatus    `gorm:"column:order_status;type:text;not null;default:'pending'"`
	Subscribe      bool                 `gorm:"column:subscribe;not null;default:false"`
	SubtotalAmount decimal.Decimal      `gorm:"column:subtotal_amount;type:numeric(12,2);not null;default:0"`
	DiscountCode   string               `gorm:"column:discount_code;not null;default:''"`
	DiscountAmount decimal.Decimal      `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal      `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	BillingInfo    *types.BillingInfo   `gorm:"column:billing_info;type:jsonb;serializer:json"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// ResolveBilling is the one place billing details are derived: the stored
// billing block when present, otherwise the customer's shipping contact.
func (o Order) ResolveBilling() types.BillingInfo {
	if o.BillingInfo != nil && !o.BillingInfo.IsZero() {
		return *o.BillingInfo
	}
	return types.BillingInfo{
		Name:       o.Customer.Name,
		Address:    o.Customer.Address,
		City:       o.Customer.City,
		PostalCode: o.Customer.PostalCode,
		Number:     o.Customer.Number,
	}
}

// OrderItem is a snapshot of a purchased product variant. ItemKey is the
// stable per-item identifier used by admin edits.
type OrderItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_order_items_key,priority:1"`
	ItemKey       string          `gorm:"column:item_key;not null;uniqueIndex:ux_order_items_key,priority:2"`
	Position      int             `gorm:"column:position;not null;default:0"`
	ProductID     string          `gorm:"column:product_id;not null"`
	Slug          string          `gorm:"column:slug;not null;default:''"`
	Title         string          `gorm:"column:title;not null"`
	Variant       string          `gorm:"column:variant;not null;default:''"`
	VariantKey    string          `gorm:"column:variant_key;not null;default:''"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountPrice decimal.Decimal `gorm:"column:discount_price;type:numeric(12,2);not null;default:0"`
	Quantity      int             `gorm:"column:quantity;not null"`
	ImageURL      string          `gorm:"column:image_url;not null;default:''"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
