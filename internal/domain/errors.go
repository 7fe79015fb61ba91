package domain

import "fmt"

// ValidationError reports client-detectable bad input. It is raised before
// any network call and is recoverable by correcting the named field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError means the last-known local state forbids the requested
// transition, e.g. editing a cancelled reservation.
type ConflictError struct {
	ID     string
	Status Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reservation %s is %s and cannot be modified", e.ID, e.Status)
}

// GatewayError means the payment redirect could not be started. Message
// carries the provider's text verbatim.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string { return e.Message }

// NetworkError wraps a transport failure or an exceeded request deadline.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx backend response with its message payload, if any.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}
