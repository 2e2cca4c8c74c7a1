package orders

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

// OrderPatch lists the order fields an admin may change. Nil fields are left
// untouched; Items replaces the whole item list.
type OrderPatch struct {
	OrderStatus    *enums.OrderStatus    `json:"orderStatus" validate:"omitnil,orderstatus"`
	PaymentStatus  *enums.PaymentStatus  `json:"paymentStatus" validate:"omitnil,paymentstatus"`
	ShippingMethod *enums.ShippingMethod `json:"shippingMethod" validate:"omitnil,shippingmethod"`
	ShippingCost   *decimal.Decimal      `json:"shippingCost"`
	PaymentMethod  *enums.PaymentMethod  `json:"paymentMethod" validate:"omitnil,paymentmethod"`
	Subscribe      *bool                 `json:"subscribe"`
	SubtotalAmount *decimal.Decimal      `json:"subtotalAmount"`
	DiscountCode   *string               `json:"discountCode" validate:"omitnil,max=50"`
	DiscountAmount *decimal.Decimal      `json:"discountAmount"`
	TotalAmount    *decimal.Decimal      `json:"totalAmount"`
	BillingInfo    *types.BillingInfo    `json:"billingInfo"`
	Items          *[]ItemInput          `json:"orderItems" validate:"omitnil,dive"`
}

// ParseOrderPatch decodes and validates a raw admin update object. Unknown
// keys are rejected.
func ParseOrderPatch(raw map[string]any) (OrderPatch, error) {
	var patch OrderPatch
	if err := validation.DecodePatch(raw, &patch); err != nil {
		return OrderPatch{}, err
	}
	if err := patch.Validate(); err != nil {
		return OrderPatch{}, err
	}
	return patch, nil
}

// Validate checks the rules the struct tags cannot express.
func (p OrderPatch) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	details := map[string]string{}
	amounts := map[string]*decimal.Decimal{
		"shippingCost":   p.ShippingCost,
		"subtotalAmount": p.SubtotalAmount,
		"discountAmount": p.DiscountAmount,
		"totalAmount":    p.TotalAmount,
	}
	for field, amount := range amounts {
		if amount != nil && amount.IsNegative() {
			details[field] = "must be greater than or equal to 0"
		}
	}
	if p.Items != nil {
		if len(*p.Items) == 0 {
			return pkgerrors.Validation(MsgNoItems)
		}
		for i, item := range *p.Items {
			if item.Price.IsNegative() {
				details[itemField(i, "price")] = "must be greater than or equal to 0"
			}
			if item.DiscountPrice.IsNegative() {
				details[itemField(i, "discountPrice")] = "must be greater than or equal to 0"
			}
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func itemField(idx int, name string) string {
	return "orderItems[" + strconv.Itoa(idx) + "]." + name
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the json names of the fields the patch touches, sorted.
func (p OrderPatch) Fields() []string {
	fields := []string{}
	for name, set := range map[string]bool{
		"orderStatus":    p.OrderStatus != nil,
		"paymentStatus":  p.PaymentStatus != nil,
		"shippingMethod": p.ShippingMethod != nil,
		"shippingCost":   p.ShippingCost != nil,
		"paymentMethod":  p.PaymentMethod != nil,
		"subscribe":      p.Subscribe != nil,
		"subtotalAmount": p.SubtotalAmount != nil,
		"discountCode":   p.DiscountCode != nil,
		"discountAmount": p.DiscountAmount != nil,
		"totalAmount":    p.TotalAmount != nil,
		"billingInfo":    p.BillingInfo != nil,
		"orderItems":     p.Items != nil,
	} {
		if set {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// ApplyTo copies the patch onto order and returns the columns it changed.
// updated_at is always included.
func (p OrderPatch) ApplyTo(order *models.Order) []string {
	columns := []string{}
	if p.OrderStatus != nil {
		order.OrderStatus = *p.OrderStatus
		columns = append(columns, "order_status")
	}
	if p.PaymentStatus != nil {
		order.PaymentStatus = *p.PaymentStatus
		columns = append(columns, "payment_status")
	}
	if p.ShippingMethod != nil {
		order.ShippingMethod = *p.ShippingMethod
		columns = append(columns, "shipping_method")
	}
	if p.ShippingCost != nil {
		order.ShippingCost = *p.ShippingCost
		columns = append(columns, "shipping_cost")
	}
	if p.PaymentMethod != nil {
		order.PaymentMethod = *p.PaymentMethod
		columns = append(columns, "payment_method")
	}
	if p.Subscribe != nil {
		order.Subscribe = *p.Subscribe
		columns = append(columns, "subscribe")
	}
	if p.SubtotalAmount != nil {
		order.SubtotalAmount = *p.SubtotalAmount
		columns = append(columns, "subtotal_amount")
	}
	if p.DiscountCode != nil {
		order.DiscountCode = strings.TrimSpace(*p.DiscountCode)
		columns = append(columns, "discount_code")
	}
	if p.DiscountAmount != nil {
		order.DiscountAmount = *p.DiscountAmount
		columns = append(columns, "discount_amount")
	}
	if p.TotalAmount != nil {
		order.TotalAmount = *p.TotalAmount
		columns = append(columns, "total_amount")
	}
	if p.BillingInfo != nil {
		order.BillingInfo = billingFromPatch(*p.BillingInfo)
		columns = append(columns, "billing_info")
	}
	return append(columns, "updated_at")
}
