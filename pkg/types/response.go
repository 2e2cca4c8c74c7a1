package types

// Ack is the bare acknowledgement returned by patch style endpoints.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// DataEnvelope wraps read responses.
type DataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}
