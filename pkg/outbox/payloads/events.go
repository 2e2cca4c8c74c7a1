package payloads

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
)

// OrderCreatedEvent signals a submitted storefront order.
type OrderCreatedEvent struct {
	OrderID        uuid.UUID           `json:"order_id"`
	OrderNumber    string              `json:"order_number"`
	CustomerID     uuid.UUID           `json:"customer_id"`
	CustomerName   string              `json:"customer_name"`
	CustomerEmail  string              `json:"customer_email,omitempty"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method"`
	ShippingMethod string              `json:"shipping_method"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	ItemCount      int                 `json:"item_count"`
	BillingName    string              `json:"billing_name"`
	BillingCity    string              `json:"billing_city"`
}

// OrderUpdatedEvent is emitted after an admin patch lands on an order.
type OrderUpdatedEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	Fields        []string            `json:"fields"`
	OrderStatus   enums.OrderStatus   `json:"order_status"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
}

// CustomerUpdatedEvent is emitted after an admin patch lands on a customer.
type CustomerUpdatedEvent struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Fields     []string  `json:"fields"`
}

// ReviewSubmittedEvent lets moderators know a review awaits approval.
type ReviewSubmittedEvent struct {
	ReviewID     uuid.UUID `json:"review_id"`
	ProductID    string    `json:"product_id"`
	Rating       int       `json:"rating"`
	ReviewerName string    `json:"reviewer_name"`
}

// ContactMessageReceivedEvent carries everything a mailer needs to forward a
// contact form submission.
type ContactMessageReceivedEvent struct {
	MessageID uuid.UUID `json:"message_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
}
