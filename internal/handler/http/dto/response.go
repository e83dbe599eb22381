package dto

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform message payload.
type MessageResponse struct {
	Message string `json:"message"`
}
