package types

import "strings"

// BillingInfo is the alternate billing contact captured when the buyer marks
// billing as different from shipping. Stored as JSON on the order row.
type BillingInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Number     string `json:"number"`
}

// IsZero reports whether no billing field carries a value.
func (b BillingInfo) IsZero() bool {
	return strings.TrimSpace(b.Name) == "" &&
		strings.TrimSpace(b.Address) == "" &&
		strings.TrimSpace(b.City) == "" &&
		strings.TrimSpace(b.PostalCode) == "" &&
		strings.TrimSpace(b.Number) == ""
}
