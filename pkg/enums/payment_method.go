package enums

import "fmt"

// PaymentMethod is how the buyer pays. Values are stored and displayed verbatim.
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "Cash On Delivery (COD)"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodWallet       PaymentMethod = "JazzCash / EasyPaisa"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodBankTransfer,
	PaymentMethodWallet,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
