package checkout

import (
	"strings"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

// Form is the storefront checkout form.
type Form struct {
	FirstName             string               `json:"firstName" validate:"required,min=2"`
	LastName              string               `json:"lastName"`
	Email                 string               `json:"email" validate:"optemail"`
	Phone                 string               `json:"phone" validate:"required,pkphone"`
	Address               string               `json:"address" validate:"required,min=5"`
	Province              string               `json:"province" validate:"province"`
	City                  string               `json:"city" validate:"required,min=2"`
	PostalCode            string               `json:"postalCode" validate:"max=20"`
	ShippingMethod        enums.ShippingMethod `json:"shippingMethod" validate:"shippingmethod"`
	PaymentMethod         enums.PaymentMethod  `json:"paymentMethod" validate:"paymentmethod"`
	DiscountCode          string               `json:"discountCode" validate:"max=50"`
	SaveInfo              bool                 `json:"saveInfo"`
	BillingSameAsShipping *bool                `json:"billingSameAsShipping"`
	Billing               BillingForm          `json:"billing" validate:"-"`
}

// BillingForm is only required when billing differs from shipping.
type BillingForm struct {
	FirstName  string `json:"firstName" validate:"required,min=2"`
	LastName   string `json:"lastName"`
	Address    string `json:"address" validate:"required,min=3"`
	City       string `json:"city" validate:"required,min=2"`
	PostalCode string `json:"postalCode" validate:"max=20"`
	Phone      string `json:"phone" validate:"omitempty,pkphone"`
}

// Request is the checkout body: the form plus the cart snapshot.
type Request struct {
	Form  Form               `json:"form"`
	Items []orders.ItemInput `json:"items"`
}

// Validate checks the form and, when billing differs, the billing block.
// Field errors from both are reported together.
func (f Form) Validate() error {
	errs := []error{validation.Struct(f)}
	if f.BillingDiffers() {
		errs = append(errs, validation.StructWithPrefix(f.Billing, "billing"))
	}
	return validation.Merge(errs...)
}

// BillingDiffers reports whether a separate billing block was asked for.
// An omitted flag means billing is the same as shipping.
func (f Form) BillingDiffers() bool {
	return f.BillingSameAsShipping != nil && !*f.BillingSameAsShipping
}

// FullName joins first and last name.
func (f Form) FullName() string {
	return joinName(f.FirstName, f.LastName)
}

func (b BillingForm) FullName() string {
	return joinName(b.FirstName, b.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
