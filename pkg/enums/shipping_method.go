package enums

import "fmt"

// ShippingMethod identifies a delivery option. Whether an option is currently
// offered, and at what cost, lives in the pricing package.
type ShippingMethod string

const (
	ShippingMethodFree ShippingMethod = "Free Delivery"
	ShippingMethodFast ShippingMethod = "Fast Delivery"
)

var validShippingMethods = []ShippingMethod{
	ShippingMethodFree,
	ShippingMethodFast,
}

// String implements fmt.Stringer.
func (s ShippingMethod) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShippingMethod.
func (s ShippingMethod) IsValid() bool {
	for _, candidate := range validShippingMethods {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShippingMethod converts raw input into a ShippingMethod.
func ParseShippingMethod(value string) (ShippingMethod, error) {
	for _, candidate := range validShippingMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping method %q", value)
}
