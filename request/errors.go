package request

import "errors"

// Standard errors for the request package
var (
	ErrInvalidConfig      = errors.New("request: invalid configuration")
	ErrInvalidHeader      = errors.New("request: header must be \"Name: value\"")
	ErrRequestFailed      = errors.New("request: request failed")
	ErrRetryableStatus    = errors.New("request: retryable status")
	ErrResponseTooLarge   = errors.New("request: response exceeds size limit")
	ErrMaxRetriesExceeded = errors.New("request: maximum retries exceeded")
	ErrNotInitialized     = errors.New("request: client not initialized")
)
