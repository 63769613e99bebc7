// Package apierror defines the envelope every 4xx/5xx response is written
// with. Handlers map internal errors onto it so clients see a stable
// {detail} shape and never a raw driver or stack message.
package apierror

// APIError carries a single human-readable detail line.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError adds a per-field breakdown for binding failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
