package visionapi

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for HTTP 401 responses.
var ErrUnauthorized = errors.New("vision API: unauthorized")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("vision API error %d: %s", e.StatusCode, e.Status)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
