package domain

import "fmt"

// CatalogLoadError is fatal at startup: the prompt templates cannot be
// built without the full catalog.
type CatalogLoadError struct {
	File string
	Err  error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("catalog load failed for %s: %v", e.File, e.Err)
}

func (e *CatalogLoadError) Unwrap() error { return e.Err }

// GatewayError is returned when the external model call fails, times
// out, or comes back empty/blocked. Recoverable at the request level.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when model output cannot be parsed
// or fails validation. Raw carries the original model text for
// diagnostic logging.
type MalformedResponseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// InputValidationError rejects bad client input before any gateway call
type InputValidationError struct {
	Msg string
}

func (e *InputValidationError) Error() string { return e.Msg }
