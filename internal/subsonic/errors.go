// ABOUTME: Typed errors for the Subsonic client: unreachable, protocol, and API failures.
// ABOUTME: Callers distinguish them with errors.As to decide how to report upstream trouble.

package subsonic

import "fmt"

// UnreachableError indicates the upstream server could not be reached or
// answered with a non-2xx status.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("subsonic server unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// ProtocolError indicates the upstream response body could not be parsed
// as the expected XML.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("failed to parse subsonic response: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// APIError indicates the upstream server answered with an explicit failure
// status and an embedded error message.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("subsonic API error: %s", e.Message)
}
