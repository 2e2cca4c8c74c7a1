// Package validation holds the shared validator instance and the storefront
// specific rules (Pakistani phone numbers, provinces, delivery and payment
// options, order states).
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
)

// PhonePattern accepts 03001234567, 923001234567 and +923001234567.
var PhonePattern = regexp.MustCompile(`^(\+92|92|0)?\d{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	register(v, "pkphone", func(s string) bool { return PhonePattern.MatchString(s) })
	register(v, "province", func(s string) bool { return enums.Province(s).IsValid() })
	register(v, "shippingmethod", func(s string) bool { return enums.ShippingMethod(s).IsValid() })
	register(v, "paymentmethod", func(s string) bool { return enums.PaymentMethod(s).IsValid() })
	register(v, "orderstatus", func(s string) bool { return enums.OrderStatus(s).IsValid() })
	register(v, "paymentstatus", func(s string) bool { return enums.PaymentStatus(s).IsValid() })
	register(v, "optemail", func(s string) bool {
		if s == "" {
			return true
		}
		_, err := mail.ParseAddress(s)
		return err == nil && !strings.Contains(s, "<")
	})
	return v
}

func register(v *validator.Validate, tag string, fn func(string) bool) {
	if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Struct validates dest and returns a VALIDATION_ERROR whose details map json
// field paths to messages.
func Struct(dest any) error {
	return StructWithPrefix(dest, "")
}

// StructWithPrefix is Struct for nested blocks validated on their own, such as
// the optional billing address.
func StructWithPrefix(dest any, prefix string) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err, prefix)
	}
	return nil
}

// Details extracts the field map from an error produced by Struct.
func Details(err error) map[string]string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return nil
	}
	details, _ := typed.Details().(map[string]string)
	return details
}

// Merge combines field errors from several Struct calls into one error.
func Merge(errs ...error) error {
	merged := map[string]string{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		details := Details(err)
		if details == nil {
			return err
		}
		for k, v := range details {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(merged)
}

// DecodePatch copies a raw partial-update object into dest, a struct of
// pointer fields, and validates it. Keys without a matching json field are
// reported as not editable.
func DecodePatch(raw map[string]any, dest any) error {
	if len(raw) == 0 {
		return pkgerrors.Validation("no fields to update")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid update payload")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if field, ok := unknownField(err); ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{field: "is not editable"})
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid update payload")
	}
	return Struct(dest)
}

func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}

func formatValidationErrors(err error, prefix string) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldPath(fieldErr, prefix)] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func fieldPath(fe validator.FieldError, prefix string) string {
	// Namespace is "Struct.field.sub"; drop the root type name.
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if prefix != "" {
		return prefix + "." + path
	}
	return path
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "email", "optemail":
		return "must be a valid email"
	case "pkphone":
		return "must be a valid Pakistani phone number (e.g., 03001234567 or +923001234567)"
	case "province":
		return "Province is required"
	case "shippingmethod":
		return "Shipping method is required"
	case "paymentmethod":
		return "Payment method is required"
	case "orderstatus":
		return "must be a valid order status"
	case "paymentstatus":
		return "must be a valid payment status"
	}
	return "is invalid"
}
