package responses

import (
	"net/http"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
)

// WriteData wraps payload in a success envelope under "data".
func WriteData(w http.ResponseWriter, payload any) {
	WriteDataStatus(w, http.StatusOK, payload)
}

func WriteDataStatus(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, types.DataEnvelope{Success: true, Data: payload})
}
