// Package common defines shared constants and sentinel errors used across
// the bookwarm client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors: required input missing or malformed, detected
	// before any request leaves the device.
	ErrValidation = errors.New("validation error")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
