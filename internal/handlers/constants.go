package handlers

const (
	ErrInvalidJSON         = "Invalid JSON body"
	ErrInvalidID           = "Invalid id"
	ErrUnauthorized        = "Unauthorized"
	ErrTooManyRequests     = "Too many requests, please try again later"
	ErrInternalServerError = "Internal server error"

	// maxBodyBytes bounds every JSON request body
	maxBodyBytes = 1 << 20
)
