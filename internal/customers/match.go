package customers

import (
	"strings"
	"unicode"
)

const phoneKeyDigits = 10

// NameKey is the case-insensitive half of the customer match key.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PhoneKey keeps the last ten digits of number so 03001234567,
// 923001234567 and +92 300 1234567 all resolve to the same customer.
func PhoneKey(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			digits = append(digits, r)
		}
	}
	if len(digits) > phoneKeyDigits {
		digits = digits[len(digits)-phoneKeyDigits:]
	}
	return string(digits)
}
