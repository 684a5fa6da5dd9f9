// Package types holds the wire envelopes shared by the API layer.
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// MessageResponse is the body for operations that only acknowledge success.
type MessageResponse struct {
	Message string `json:"message"`
}
