// Package edit turns an admin's edited order form into typed commands and
// dispatches the resulting order and customer patches.
package edit

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

// Command is one validated change requested by an admin edit.
type Command interface {
	Name() string
	Validate() error
}

// OrderCommand changes fields stored on the order row.
type OrderCommand interface {
	Command
	ApplyOrder(p *orders.OrderPatch)
}

// CustomerCommand changes fields stored on the customer record.
type CustomerCommand interface {
	Command
	ApplyCustomer(p *customers.Patch)
}

func invalid(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{field: msg})
}

type UpdateOrderStatus struct {
	Status enums.OrderStatus
}

func (UpdateOrderStatus) Name() string { return "orderStatus" }

func (c UpdateOrderStatus) Validate() error {
	if !c.Status.IsValid() {
		return invalid("orderStatus", "must be a valid order status")
	}
	return nil
}

func (c UpdateOrderStatus) ApplyOrder(p *orders.OrderPatch) {
	status := c.Status
	p.OrderStatus = &status
}

type UpdatePaymentStatus struct {
	Status enums.PaymentStatus
}

func (UpdatePaymentStatus) Name() string { return "paymentStatus" }

func (c UpdatePaymentStatus) Validate() error {
	if !c.Status.IsValid() {
		return invalid("paymentStatus", "must be a valid payment status")
	}
	return nil
}

func (c UpdatePaymentStatus) ApplyOrder(p *orders.OrderPatch) {
	status := c.Status
	p.PaymentStatus = &status
}

type UpdateShippingMethod struct {
	Method enums.ShippingMethod
}

func (UpdateShippingMethod) Name() string { return "shippingMethod" }

func (c UpdateShippingMethod) Validate() error {
	if !c.Method.IsValid() {
		return invalid("shippingMethod", "Shipping method is required")
	}
	return nil
}

func (c UpdateShippingMethod) ApplyOrder(p *orders.OrderPatch) {
	method := c.Method
	p.ShippingMethod = &method
}

type UpdatePaymentMethod struct {
	Method enums.PaymentMethod
}

func (UpdatePaymentMethod) Name() string { return "paymentMethod" }

func (c UpdatePaymentMethod) Validate() error {
	if !c.Method.IsValid() {
		return invalid("paymentMethod", "Payment method is required")
	}
	return nil
}

func (c UpdatePaymentMethod) ApplyOrder(p *orders.OrderPatch) {
	method := c.Method
	p.PaymentMethod = &method
}

// UpdateAmounts carries whichever money fields were edited.
type UpdateAmounts struct {
	ShippingCost   *decimal.Decimal
	SubtotalAmount *decimal.Decimal
	DiscountAmount *decimal.Decimal
	TotalAmount    *decimal.Decimal
}

func (UpdateAmounts) Name() string { return "amounts" }

func (c UpdateAmounts) Validate() error {
	details := map[string]string{}
	for field, amount := range map[string]*decimal.Decimal{
		"shippingCost":   c.ShippingCost,
		"subtotalAmount": c.SubtotalAmount,
		"discountAmount": c.DiscountAmount,
		"totalAmount":    c.TotalAmount,
	} {
		if amount != nil && amount.IsNegative() {
			details[field] = "must be greater than or equal to 0"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func (c UpdateAmounts) ApplyOrder(p *orders.OrderPatch) {
	p.ShippingCost = c.ShippingCost
	p.SubtotalAmount = c.SubtotalAmount
	p.DiscountAmount = c.DiscountAmount
	p.TotalAmount = c.TotalAmount
}

type UpdateDiscountCode struct {
	Code string
}

func (UpdateDiscountCode) Name() string { return "discountCode" }

func (c UpdateDiscountCode) Validate() error {
	if len(strings.TrimSpace(c.Code)) > 50 {
		return invalid("discountCode", "must be at most 50 characters")
	}
	return nil
}

func (c UpdateDiscountCode) ApplyOrder(p *orders.OrderPatch) {
	code := strings.TrimSpace(c.Code)
	p.DiscountCode = &code
}

// ItemEdit is the editable part of one order item as sent by the form.
type ItemEdit struct {
	Key      string
	Title    string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// UpdateOrderItems rewrites the item list: items missing from Edits are
// removed, the rest keep their snapshot with title, price and quantity taken
// from the edit.
type UpdateOrderItems struct {
	Original []orders.ItemView
	Edits    []ItemEdit
}

func (UpdateOrderItems) Name() string { return "orderItems" }

func (c UpdateOrderItems) Validate() error {
	if len(c.Edits) == 0 {
		return pkgerrors.Validation(orders.MsgNoItems)
	}
	known := make(map[string]bool, len(c.Original))
	for _, item := range c.Original {
		known[item.Key] = true
	}
	details := map[string]string{}
	seen := map[string]bool{}
	for i, edit := range c.Edits {
		prefix := "orderItems[" + strconv.Itoa(i) + "]."
		switch {
		case !known[edit.Key]:
			details[prefix+"_key"] = "does not match an item on this order"
		case seen[edit.Key]:
			details[prefix+"_key"] = "is duplicated"
		}
		seen[edit.Key] = true
		if strings.TrimSpace(edit.Title) == "" {
			details[prefix+"title"] = "is required"
		}
		if edit.Price.IsNegative() {
			details[prefix+"price"] = "must be greater than or equal to 0"
		}
		if !edit.Quantity.IsInteger() {
			details[prefix+"quantity"] = "must be a whole number"
		} else if edit.Quantity.LessThan(decimal.NewFromInt(1)) {
			details[prefix+"quantity"] = "must be at least 1"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

// Items resolves the edits against the original snapshots.
func (c UpdateOrderItems) Items() []orders.ItemInput {
	byKey := make(map[string]orders.ItemView, len(c.Original))
	for _, item := range c.Original {
		byKey[item.Key] = item
	}
	out := make([]orders.ItemInput, 0, len(c.Edits))
	for _, edit := range c.Edits {
		orig := byKey[edit.Key]
		out = append(out, orders.ItemInput{
			Key:           orig.Key,
			ProductID:     orig.ProductID,
			Slug:          orig.Slug,
			Title:         strings.TrimSpace(edit.Title),
			Variant:       orig.Variant,
			VariantKey:    orig.VariantKey,
			Price:         edit.Price,
			DiscountPrice: orig.DiscountPrice,
			Quantity:      int(edit.Quantity.IntPart()),
			ImageURL:      orig.ImageURL,
		})
	}
	return out
}

func (c UpdateOrderItems) ApplyOrder(p *orders.OrderPatch) {
	items := c.Items()
	p.Items = &items
}

type UpdateBillingInfo struct {
	Info types.BillingInfo
}

func (UpdateBillingInfo) Name() string { return "billingInfo" }

func (c UpdateBillingInfo) Validate() error {
	if c.Info.IsZero() {
		return nil
	}
	form := billingForm{
		Name:    c.Info.Name,
		Address: c.Info.Address,
		City:    c.Info.City,
		Number:  c.Info.Number,
	}
	return validation.StructWithPrefix(form, "billingInfo")
}

type billingForm struct {
	Name    string `json:"name" validate:"required,min=2"`
	Address string `json:"address" validate:"required,min=3"`
	City    string `json:"city" validate:"required,min=2"`
	Number  string `json:"number" validate:"omitempty,pkphone"`
}

func (c UpdateBillingInfo) ApplyOrder(p *orders.OrderPatch) {
	info := c.Info
	p.BillingInfo = &info
}

// UpdateCustomerFields carries the edited customer fields.
type UpdateCustomerFields struct {
	Fields customers.Patch
}

func (UpdateCustomerFields) Name() string { return "customer" }

func (c UpdateCustomerFields) Validate() error {
	if c.Fields.IsEmpty() {
		return invalid("customer", "no fields to update")
	}
	return validation.StructWithPrefix(c.Fields, "customer")
}

func (c UpdateCustomerFields) ApplyCustomer(p *customers.Patch) {
	f := c.Fields
	if f.Name != nil {
		p.Name = f.Name
	}
	if f.Email != nil {
		p.Email = f.Email
	}
	if f.Number != nil {
		p.Number = f.Number
	}
	if f.Address != nil {
		p.Address = f.Address
	}
	if f.City != nil {
		p.City = f.City
	}
	if f.Province != nil {
		p.Province = f.Province
	}
	if f.PostalCode != nil {
		p.PostalCode = f.PostalCode
	}
}
