package homework

import "fmt"

// MalformedResponseError reports a statuses payload whose shape does not
// match the API contract (not an object, or the homeworks field is absent
// or not a list).
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// MissingFieldError reports a homework record that lacks a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "homework record is missing required field " + e.Field
}

// UnknownStatusError reports a status value with no verdict. An unrecognized
// state coming from the API must surface, not be silently ignored.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", e.Status)
}
