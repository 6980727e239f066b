package sapi

import (
	"errors"
	"fmt"

	"github.com/blockberries/sapi/types"
)

// ConstructionError reports missing or inconsistent data while building
// or signing an extrinsic. It is always returned synchronously, before
// any network call.
type ConstructionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("construct %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("construct %s: %s", e.Op, e.Reason)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// NewConstructionError creates a new ConstructionError.
func NewConstructionError(op, reason string, err error) *ConstructionError {
	return &ConstructionError{Op: op, Reason: reason, Err: err}
}

// IsConstruction checks whether an error is a ConstructionError and
// returns it.
func IsConstruction(err error) (*ConstructionError, bool) {
	var c *ConstructionError
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}

// SubmissionError reports that a submitted extrinsic ended in a failure
// state: dropped from the pool, rejected as invalid, or errored. The
// extrinsic must be rebuilt and re-signed before another attempt.
type SubmissionError struct {
	Status types.TxStatus
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("extrinsic %s", e.Status)
}

// NewSubmissionError creates a new SubmissionError.
func NewSubmissionError(status types.TxStatus) *SubmissionError {
	return &SubmissionError{Status: status}
}

// IsSubmission checks whether an error is a SubmissionError and returns
// it.
func IsSubmission(err error) (*SubmissionError, bool) {
	var s *SubmissionError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}

// TransportError wraps a failure reported by the connection to the
// node. Client layers pass it through unchanged.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError creates a new TransportError.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// IsTransport checks whether an error is a TransportError and returns
// it.
func IsTransport(err error) (*TransportError, bool) {
	var t *TransportError
	if errors.As(err, &t) {
		return t, true
	}
	return nil, false
}
