package edit

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

// CustomerForm is the customer block of the edit form.
type CustomerForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Number     string `json:"number"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// ItemForm is one row of the item editor. Numbers may arrive as JSON
// numbers or numeric strings.
type ItemForm struct {
	Key      string          `json:"_key"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Form is the full edited order as submitted by the dashboard.
type Form struct {
	OrderStatus    string             `json:"orderStatus"`
	PaymentStatus  string             `json:"paymentStatus"`
	ShippingMethod string             `json:"shippingMethod"`
	PaymentMethod  string             `json:"paymentMethod"`
	ShippingCost   decimal.Decimal    `json:"shippingCost"`
	SubtotalAmount decimal.Decimal    `json:"subtotalAmount"`
	DiscountCode   string             `json:"discountCode"`
	DiscountAmount decimal.Decimal    `json:"discountAmount"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	Customer       CustomerForm       `json:"customer"`
	BillingInfo    *types.BillingInfo `json:"billingInfo"`
	Items          []ItemForm         `json:"orderItems"`
}

// Request pairs the edited form with the names of the fields the admin
// touched. Customer fields may be named "customer" or "customer.<field>".
type Request struct {
	Form  Form     `json:"order"`
	Dirty []string `json:"dirtyFields"`
}

// Plan is the pair of patches an edit produces. Either side may be nil.
type Plan struct {
	Order    *orders.OrderPatch
	Customer *customers.Patch
}

// Empty reports whether the plan dispatches nothing.
func (p Plan) Empty() bool {
	return p.Order == nil && p.Customer == nil
}

var customerFields = []string{"name", "email", "number", "address", "city", "province", "postalCode"}

// Commands translates the dirty set into typed commands. Amount fields fold
// into one UpdateAmounts; customer fields into one UpdateCustomerFields.
func Commands(original orders.OrderView, form Form, dirty []string) ([]Command, error) {
	var (
		cmds        []Command
		amounts     UpdateAmounts
		haveAmounts bool
	)
	custFields := map[string]bool{}
	unknown := map[string]string{}
	seen := map[string]bool{}
	sortedDirty := append([]string(nil), dirty...)
	sort.Strings(sortedDirty)

	for _, raw := range sortedDirty {
		key := strings.TrimSpace(raw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		switch {
		case key == "orderStatus":
			cmds = append(cmds, UpdateOrderStatus{Status: enums.OrderStatus(form.OrderStatus)})
		case key == "paymentStatus":
			cmds = append(cmds, UpdatePaymentStatus{Status: enums.PaymentStatus(form.PaymentStatus)})
		case key == "shippingMethod":
			cmds = append(cmds, UpdateShippingMethod{Method: enums.ShippingMethod(form.ShippingMethod)})
		case key == "paymentMethod":
			cmds = append(cmds, UpdatePaymentMethod{Method: enums.PaymentMethod(form.PaymentMethod)})
		case key == "shippingCost":
			amounts.ShippingCost, haveAmounts = ptr(form.ShippingCost), true
		case key == "subtotalAmount":
			amounts.SubtotalAmount, haveAmounts = ptr(form.SubtotalAmount), true
		case key == "discountAmount":
			amounts.DiscountAmount, haveAmounts = ptr(form.DiscountAmount), true
		case key == "totalAmount":
			amounts.TotalAmount, haveAmounts = ptr(form.TotalAmount), true
		case key == "discountCode":
			cmds = append(cmds, UpdateDiscountCode{Code: form.DiscountCode})
		case key == "orderItems":
			edits := make([]ItemEdit, 0, len(form.Items))
			for _, item := range form.Items {
				edits = append(edits, ItemEdit{Key: item.Key, Title: item.Title, Price: item.Price, Quantity: item.Quantity})
			}
			cmds = append(cmds, UpdateOrderItems{Original: original.Items, Edits: edits})
		case key == "billingInfo":
			info := types.BillingInfo{}
			if form.BillingInfo != nil {
				info = *form.BillingInfo
			}
			cmds = append(cmds, UpdateBillingInfo{Info: info})
		case key == "customer":
			for _, field := range customerFields {
				custFields[field] = true
			}
		case strings.HasPrefix(key, "customer."):
			field := strings.TrimPrefix(key, "customer.")
			if !contains(customerFields, field) {
				unknown[key] = "is not editable"
				continue
			}
			custFields[field] = true
		default:
			unknown[key] = "is not editable"
		}
	}

	if len(unknown) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(unknown)
	}
	if haveAmounts {
		cmds = append(cmds, amounts)
	}
	if len(custFields) > 0 {
		cmds = append(cmds, UpdateCustomerFields{Fields: customerPatch(form.Customer, custFields)})
	}
	return cmds, nil
}

// Compile validates every command and folds them into the two patches. All
// validation failures are reported together.
func Compile(cmds []Command) (Plan, error) {
	var errs []error
	for _, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := validation.Merge(errs...); err != nil {
		return Plan{}, err
	}

	var plan Plan
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case OrderCommand:
			if plan.Order == nil {
				plan.Order = &orders.OrderPatch{}
			}
			c.ApplyOrder(plan.Order)
		case CustomerCommand:
			if plan.Customer == nil {
				plan.Customer = &customers.Patch{}
			}
			c.ApplyCustomer(plan.Customer)
		}
	}
	return plan, nil
}

func customerPatch(form CustomerForm, fields map[string]bool) customers.Patch {
	var p customers.Patch
	values := map[string]string{
		"name":       form.Name,
		"email":      form.Email,
		"number":     form.Number,
		"address":    form.Address,
		"city":       form.City,
		"province":   form.Province,
		"postalCode": form.PostalCode,
	}
	targets := map[string]**string{
		"name":       &p.Name,
		"email":      &p.Email,
		"number":     &p.Number,
		"address":    &p.Address,
		"city":       &p.City,
		"province":   &p.Province,
		"postalCode": &p.PostalCode,
	}
	for field := range fields {
		value := values[field]
		*targets[field] = &value
	}
	return p
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
