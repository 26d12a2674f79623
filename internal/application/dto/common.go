package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Retryable marks transient conditions (e.g. sequence lock contention)
	// the client may safely retry with the same payload.
	Retryable bool `json:"retryable,omitempty"`
}
