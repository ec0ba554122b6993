package client

import "fmt"

// StatusError is an application-level rejection: the backend answered with a
// non-2xx status. Message holds the backend's own error text and may be shown
// to the user verbatim; it is empty when the body carried none. Transport
// failures are not StatusErrors.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %d", e.Code)
	}
	return fmt.Sprintf("api status %d: %s", e.Code, e.Message)
}
