// Package pricing computes cart totals on the server so submitted amounts can
// be checked against what the storefront displayed.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
)

// InvalidDiscountNotice is reported for every code the discount book rejects.
const InvalidDiscountNotice = "Invalid discount code"

// ShippingOption is one delivery choice shown at checkout.
type ShippingOption struct {
	Label  string               `json:"label"`
	Value  enums.ShippingMethod `json:"value"`
	Cost   decimal.Decimal      `json:"cost"`
	Active bool                 `json:"-"`
}

var shippingOptions = []ShippingOption{
	{Label: "Free shipping", Value: enums.ShippingMethodFree, Cost: decimal.Zero, Active: true},
	{Label: "Fast & Secure Delivery (2-3 Days)", Value: enums.ShippingMethodFast, Cost: decimal.NewFromInt(299)},
}

// ShippingOptions returns the options currently offered to buyers.
func ShippingOptions() []ShippingOption {
	out := []ShippingOption{}
	for _, opt := range shippingOptions {
		if opt.Active {
			out = append(out, opt)
		}
	}
	return out
}

// ShippingCost looks the method up among the active options. Unknown, empty
// and inactive methods cost nothing.
func ShippingCost(method enums.ShippingMethod) decimal.Decimal {
	for _, opt := range ShippingOptions() {
		if opt.Value == method {
			return opt.Cost
		}
	}
	return decimal.Zero
}

// Line is the priced part of a cart item.
type Line struct {
	Price         decimal.Decimal
	DiscountPrice decimal.Decimal
	Quantity      int
}

// UnitPrice is the discounted price when one is set, else the list price.
func (l Line) UnitPrice() decimal.Decimal {
	if l.DiscountPrice.IsPositive() {
		return l.DiscountPrice
	}
	return l.Price
}

// Total multiplies the unit price by the quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Subtotal sums every line total.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Total())
	}
	return sum
}

// DiscountBook maps accepted codes to a flat amount off the order.
type DiscountBook map[string]decimal.Decimal

// DefaultDiscountBook accepts no codes.
func DefaultDiscountBook() DiscountBook {
	return DiscountBook{}
}

// Discount is the outcome of applying a code.
type Discount struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	Notice string          `json:"notice,omitempty"`
}

// Apply looks code up case-insensitively. A rejected code yields a zero
// amount, an empty code and the invalid notice.
func (b DiscountBook) Apply(code string) Discount {
	code = strings.TrimSpace(code)
	if code == "" {
		return Discount{Amount: decimal.Zero}
	}
	for known, amount := range b {
		if strings.EqualFold(known, code) {
			return Discount{Code: known, Amount: amount}
		}
	}
	return Discount{Amount: decimal.Zero, Notice: InvalidDiscountNotice}
}

// Totals are the amounts stored on an order.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	DiscountCode   string          `json:"discountCode"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Notice         string          `json:"notice,omitempty"`
}

// Calculator prices carts against a discount book.
type Calculator struct {
	discounts DiscountBook
}

// NewCalculator returns a calculator; a nil book rejects every code.
func NewCalculator(book DiscountBook) Calculator {
	if book == nil {
		book = DefaultDiscountBook()
	}
	return Calculator{discounts: book}
}

// Quote computes totals for the lines, shipping method and discount code.
func (c Calculator) Quote(lines []Line, method enums.ShippingMethod, code string) Totals {
	subtotal := Subtotal(lines)
	shipping := ShippingCost(method)
	discount := c.discounts.Apply(code)
	if discount.Amount.GreaterThan(subtotal) {
		discount.Amount = subtotal
	}
	return Totals{
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		DiscountCode:   discount.Code,
		DiscountAmount: discount.Amount,
		TotalAmount:    Total(subtotal, shipping, discount.Amount),
		Notice:         discount.Notice,
	}
}

// Total is subtotal - discount + shipping.
func Total(subtotal, shipping, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(shipping)
}

// Consistent reports whether total equals subtotal + shipping - discount to
// the cent.
func Consistent(subtotal, shipping, discount, total decimal.Decimal) bool {
	return Total(subtotal, shipping, discount).Round(2).Equal(total.Round(2))
}
