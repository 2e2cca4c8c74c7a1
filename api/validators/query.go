package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryFilter reads an enum-like filter where "all" or blank means no
// filtering. The returned value is empty when unfiltered.
func ParseQueryFilter(r *http.Request, key string, valid func(string) bool) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" || strings.EqualFold(raw, "all") {
		return "", nil
	}
	if !valid(raw) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid filter value").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return raw, nil
}
