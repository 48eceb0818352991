package errors

import "net/http"

var (
	ErrUserNotFound       = notFound("user not found")
	ErrProviderNotFound   = notFound("provider not found")
	ErrEmailTaken         = conflict("an account with this email already exists")
	ErrProviderFields     = badRequest("provider type specific fields are required")
	ErrPasswordTooLong    = badRequest("password must be at most 72 bytes")
	ErrInvalidCredentials = &Exception{Message: "invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrUnauthorized       = &Exception{Message: "unauthorized", StatusCode: http.StatusUnauthorized}
)
