package models

// ErrorResponse is the standard error payload returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse is the standard acknowledgement payload.
type SuccessResponse struct {
	Message string `json:"message"`
}
