package router

import "fmt"

// MalformedPlanError means the completion output failed to parse or lacked
// the required {action, arguments, response_template} shape.
type MalformedPlanError struct {
	Reason string
}

func (e *MalformedPlanError) Error() string {
	return e.Reason
}

// UnsupportedActionError means the model asked for an action outside the
// fixed registry. The action is never executed.
type UnsupportedActionError struct {
	Action string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("Unsupported action requested by the assistant: %s", e.Action)
}

// ValidationError is the domain error raised by executors on missing or
// invalid arguments, not-found entities, and sandbox policy violations. The
// reason text is the user-visible explanation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ErrDocumentNotFound is returned by DocumentStore implementations when no
// document matches the requested id.
var ErrDocumentNotFound = &ValidationError{Reason: "Requested document does not exist."}

// CompletionError wraps a transport-level failure of the completion call.
// The cause is logged, never surfaced verbatim to the caller.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion call failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
