package enums

import "fmt"

type Province string

const (
	ProvinceSindh       Province = "Sindh"
	ProvincePunjab      Province = "Punjab"
	ProvinceBalochistan Province = "Balochistan"
	ProvinceAJK         Province = "Azad Kashmir"
	ProvinceGB          Province = "Gilgit Baltistan"
	ProvinceFATA        Province = "Federally Administered Tribal Areas (FATA)"
)

var validProvinces = []Province{
	ProvinceSindh,
	ProvincePunjab,
	ProvinceBalochistan,
	ProvinceAJK,
	ProvinceGB,
	ProvinceFATA,
}

// Provinces returns the selectable provinces in form order.
func Provinces() []Province {
	out := make([]Province, len(validProvinces))
	copy(out, validProvinces)
	return out
}

// IsValid reports whether the value is a selectable province.
func (p Province) IsValid() bool {
	for _, candidate := range validProvinces {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProvince converts raw input into a Province.
func ParseProvince(value string) (Province, error) {
	for _, candidate := range validProvinces {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid province %q", value)
}
