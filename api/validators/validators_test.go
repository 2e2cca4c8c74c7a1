package validators

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.pk","password":"x","role":"admin"}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email","password":""}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	details := validation.Details(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestDecodeJSONBodyEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())
}

func TestDecodePatchBodyKeepsNumbers(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"totalAmount": 2000, "orderStatus":"shipped"}`))
	body, err := DecodePatchBody(req)
	require.NoError(t, err)
	assert.Equal(t, json.Number("2000"), body["totalAmount"])
	assert.Equal(t, "shipped", body["orderStatus"])
}

func TestParseQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?offset=50&orderStatus=all&paymentStatus=paid&bad=x", nil)

	offset, err := ParseQueryInt(req, "offset", 0, 0, 100000)
	require.NoError(t, err)
	assert.Equal(t, 50, offset)

	_, err = ParseQueryInt(req, "bad", 0, 0, 10)
	require.Error(t, err)

	status, err := ParseQueryFilter(req, "orderStatus", func(s string) bool { return enums.OrderStatus(s).IsValid() })
	require.NoError(t, err)
	assert.Empty(t, status)

	payment, err := ParseQueryFilter(req, "paymentStatus", func(s string) bool { return enums.PaymentStatus(s).IsValid() })
	require.NoError(t, err)
	assert.Equal(t, "paid", payment)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Karachi", SanitizeString("  Karachi ", 0))
	assert.Equal(t, "Lah", SanitizeString("Lahore", 3))
}
