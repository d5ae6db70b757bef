package models

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}
