package errors

var ErrInvalidJSON = badRequest("invalid JSON payload")
