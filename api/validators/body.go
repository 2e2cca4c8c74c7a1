package validators

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

const maxBodyBytes = 1 << 20

// DecodeJSONBody decodes a strict JSON body into dest and runs struct
// validation on it.
func DecodeJSONBody(r *http.Request, dest any) error {
	if err := decode(r, dest, true); err != nil {
		return err
	}
	return validation.Struct(dest)
}

// DecodeJSON decodes a strict JSON body without validating it, for handlers
// whose service owns validation order.
func DecodeJSON(r *http.Request, dest any) error {
	return decode(r, dest, true)
}

// DecodePatchBody decodes a partial update object. Unknown keys are kept so
// the caller can reject them against its own field whitelist.
func DecodePatchBody(r *http.Request) (map[string]any, error) {
	var body map[string]any
	if err := decode(r, &body, false); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request body")
	}
	return body, nil
}

func decode(r *http.Request, dest any, strict bool) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if strict {
		decoder.DisallowUnknownFields()
	}
	decoder.UseNumber()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	return nil
}
