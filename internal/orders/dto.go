package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
)

// ItemInput is one cart line as submitted by the storefront. Key is only
// carried by admin item edits.
type ItemInput struct {
	Key           string          `json:"_key,omitempty"`
	ProductID     string          `json:"productId" validate:"required"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title" validate:"required"`
	Variant       string          `json:"variant"`
	VariantKey    string          `json:"variantKey"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Quantity      int             `json:"quantity" validate:"gte=1"`
	ImageURL      string          `json:"imageUrl"`
}

// SubmitPayload is the order submission body. Amounts missing from the JSON
// decode as zero.
type SubmitPayload struct {
	Name           string               `json:"name" validate:"required,min=2,max=100"`
	Email          string               `json:"email" validate:"optemail"`
	Number         string               `json:"number" validate:"required,pkphone"`
	Address        string               `json:"address" validate:"required,min=5"`
	City           string               `json:"city" validate:"required,min=2"`
	Province       string               `json:"province" validate:"province"`
	PostalCode     string               `json:"postalCode" validate:"max=20"`
	ShippingMethod enums.ShippingMethod `json:"shippingMethod" validate:"shippingmethod"`
	ShippingCost   decimal.Decimal      `json:"shippingCost"`
	PaymentMethod  enums.PaymentMethod  `json:"paymentMethod" validate:"paymentmethod"`
	Subscribe      bool                 `json:"subscribe"`
	SubtotalAmount decimal.Decimal      `json:"subtotalAmount"`
	DiscountCode   string               `json:"discountCode"`
	DiscountAmount decimal.Decimal      `json:"discountAmount"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	BillingInfo    *types.BillingInfo   `json:"billingInfo,omitempty"`
	Items          []ItemInput          `json:"orderItems" validate:"dive"`
}

// SubmitResult identifies the order created by a submission.
type SubmitResult struct {
	ID          uuid.UUID
	OrderNumber string
	Number      int64
}

// CustomerView is the customer block embedded in order responses.
type CustomerView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Number     string    `json:"number"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	PostalCode string    `json:"postalCode"`
}

// ItemView is an order item as the dashboard sees it.
type ItemView struct {
	Key           string          `json:"_key"`
	ProductID     string          `json:"productId"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Variant       string          `json:"variant"`
	VariantKey    string          `json:"variantKey"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Quantity      int             `json:"quantity"`
	ImageURL      string          `json:"imageUrl"`
}

// OrderView is the admin representation of an order with its customer and
// resolved billing details.
type OrderView struct {
	ID             uuid.UUID            `json:"id"`
	OrderID        string               `json:"orderId"`
	CreatedAt      time.Time            `json:"createdAt"`
	Customer       CustomerView         `json:"customer"`
	Items          []ItemView           `json:"orderItems"`
	ShippingMethod enums.ShippingMethod `json:"shippingMethod"`
	ShippingCost   decimal.Decimal      `json:"shippingCost"`
	PaymentMethod  enums.PaymentMethod  `json:"paymentMethod"`
	PaymentStatus  enums.PaymentStatus  `json:"paymentStatus"`
	OrderStatus    enums.OrderStatus    `json:"orderStatus"`
	Subscribe      bool                 `json:"subscribe"`
	SubtotalAmount decimal.Decimal      `json:"subtotalAmount"`
	DiscountCode   string               `json:"discountCode"`
	DiscountAmount decimal.Decimal      `json:"discountAmount"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	BillingInfo    types.BillingInfo    `json:"billingInfo"`
	BillingSame    bool                 `json:"billingSameAsShipping"`
}

// NewOrderView maps a loaded order, including its customer and items.
func NewOrderView(order models.Order) OrderView {
	items := make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemView{
			Key:           item.ItemKey,
			ProductID:     item.ProductID,
			Slug:          item.Slug,
			Title:         item.Title,
			Variant:       item.Variant,
			VariantKey:    item.VariantKey,
			Price:         item.Price,
			DiscountPrice: item.DiscountPrice,
			Quantity:      item.Quantity,
			ImageURL:      item.ImageURL,
		})
	}
	c := order.Customer
	return OrderView{
		ID:        order.ID,
		OrderID:   order.OrderNumber,
		CreatedAt: order.CreatedAt,
		Customer: CustomerView{
			ID:         c.ID,
			Name:       c.Name,
			Email:      c.Email,
			Number:     c.Number,
			Address:    c.Address,
			City:       c.City,
			Province:   c.Province,
			PostalCode: c.PostalCode,
		},
		Items:          items,
		ShippingMethod: order.ShippingMethod,
		ShippingCost:   order.ShippingCost,
		PaymentMethod:  order.PaymentMethod,
		PaymentStatus:  order.PaymentStatus,
		OrderStatus:    order.OrderStatus,
		Subscribe:      order.Subscribe,
		SubtotalAmount: order.SubtotalAmount,
		DiscountCode:   order.DiscountCode,
		DiscountAmount: order.DiscountAmount,
		TotalAmount:    order.TotalAmount,
		BillingInfo:    order.ResolveBilling(),
		BillingSame:    order.BillingInfo == nil || order.BillingInfo.IsZero(),
	}
}

// NewOrderViews maps a slice of loaded orders.
func NewOrderViews(orders []models.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderView(order))
	}
	return out
}
