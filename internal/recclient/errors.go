package recclient

import "fmt"

// Kind classifies a failed backend call.
type Kind string

const (
	// KindTransport is a network failure; no response was received.
	KindTransport Kind = "transport"
	// KindStatus is a non-2xx response.
	KindStatus Kind = "status"
	// KindMalformed is a 2xx response whose body could not be decoded.
	KindMalformed Kind = "malformed"
	// KindBackend is a 2xx response carrying an error field.
	KindBackend Kind = "backend"
)

// Error is returned for every failed call. Message is suitable for display.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail includes the kind and status, for logs.
func (e *Error) Detail() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Kind)
}
