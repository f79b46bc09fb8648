// Package modelsource provides an HTTP-backed probability source wrapping a
// separately trained statistical model service.
package modelsource

import "errors"

var (
	// ErrServiceUnavailable indicates the model service is unreachable
	ErrServiceUnavailable = errors.New("model service unavailable")

	// ErrInvalidResponse indicates the model service response is invalid
	ErrInvalidResponse = errors.New("invalid response from model service")
)
