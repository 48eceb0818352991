package errors

import (
	"errors"
	"net/http"
)

// Exception is a business-rule rejection carrying the HTTP status it maps to.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func notFound(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusNotFound}
}

func forbidden(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusForbidden}
}

func badRequest(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusBadRequest}
}

func conflict(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusConflict}
}
