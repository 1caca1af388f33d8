// Package types holds the JSON envelopes shared by every storefront endpoint.
package types

// SuccessEnvelope wraps a successful payload, so cart views, receipts and
// order lists all arrive under the same "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failure. Details carries structured
// extras such as per-field checkout validation messages.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError for the wire.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
