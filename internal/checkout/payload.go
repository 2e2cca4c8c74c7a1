package checkout

import (
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
)

// Lines converts cart items into pricing lines.
func Lines(items []orders.ItemInput) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{
			Price:         item.Price,
			DiscountPrice: item.DiscountPrice,
			Quantity:      item.Quantity,
		})
	}
	return lines
}

// BuildPayload merges a validated form, the cart snapshot and its totals into
// an order submission. Billing is carried only when it differs from shipping.
func BuildPayload(form Form, items []orders.ItemInput, totals pricing.Totals) orders.SubmitPayload {
	payload := orders.SubmitPayload{
		Name:           form.FullName(),
		Email:          form.Email,
		Number:         form.Phone,
		Address:        form.Address,
		City:           form.City,
		Province:       form.Province,
		PostalCode:     form.PostalCode,
		ShippingMethod: form.ShippingMethod,
		ShippingCost:   totals.ShippingCost,
		PaymentMethod:  form.PaymentMethod,
		SubtotalAmount: totals.Subtotal,
		DiscountCode:   totals.DiscountCode,
		DiscountAmount: totals.DiscountAmount,
		TotalAmount:    totals.TotalAmount,
		Items:          make([]orders.ItemInput, 0, len(items)),
	}
	for _, item := range items {
		item.Key = ""
		payload.Items = append(payload.Items, item)
	}
	if form.BillingDiffers() {
		payload.BillingInfo = &types.BillingInfo{
			Name:       form.Billing.FullName(),
			Address:    form.Billing.Address,
			City:       form.Billing.City,
			PostalCode: form.Billing.PostalCode,
			Number:     form.Billing.Phone,
		}
	}
	return payload
}
