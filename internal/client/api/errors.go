package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport failures: the request never completed or the
// server could not be reached.
var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx response from the API, carrying the server-provided
// message when the body contained one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
