// Package client implements the upload and save boundaries: parsing a resume
// through the external parser service and submitting the profile to the
// persistence endpoint.
package client

import (
	"fmt"
	"net/http"
)

// TransportError represents a non-success response from the parser service
// or the persistence endpoint. Detail carries a server-supplied,
// human-readable explanation when one could be extracted.
type TransportError struct {
	Op         string
	StatusCode int
	Detail     string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s failed: HTTP %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ContractError represents a parser response that does not match the
// expected ProfileData shape. The shape is checked actively against the
// embedded schema, never assumed.
type ContractError struct {
	Message string
	Cause   error
}

func (e *ContractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parser contract violation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parser contract violation: %s", e.Message)
}

func (e *ContractError) Unwrap() error {
	return e.Cause
}
