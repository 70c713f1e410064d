package core

import "fmt"

// ErrorKind discriminates the error classes the core recognizes (spec §7).
type ErrorKind string

const (
	// KindConstruction marks errors raised while building a strategy or
	// engine from invalid parameters. Fatal at setup time.
	KindConstruction ErrorKind = "construction"
	// KindData marks errors found in the candle series itself. Fatal for
	// the run; the core never attempts repair.
	KindData ErrorKind = "data"
)

// ConstructionError is returned when a strategy or engine is built with
// parameters that violate an invariant (fast >= slow, period < 2, ...).
type ConstructionError struct {
	Component string
	Reason    string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction error in %s: %s", e.Component, e.Reason)
}

// Kind implements the discriminated-error contract.
func (e *ConstructionError) Kind() ErrorKind { return KindConstruction }

// NewConstructionError builds a ConstructionError for the given component.
func NewConstructionError(component, reason string) *ConstructionError {
	return &ConstructionError{Component: component, Reason: reason}
}

// DataError is returned when the candle series itself violates an
// invariant: empty, non-monotonic open_time, or an OHLCV violation.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: %s", e.Reason)
}

// Kind implements the discriminated-error contract.
func (e *DataError) Kind() ErrorKind { return KindData }

// NewDataError builds a DataError.
func NewDataError(reason string) *DataError {
	return &DataError{Reason: reason}
}

// KindOf extracts the discriminating kind from an error produced by this
// package, or "" if the error is not one of ours.
func KindOf(err error) ErrorKind {
	switch e := err.(type) {
	case *ConstructionError:
		return e.Kind()
	case *DataError:
		return e.Kind()
	default:
		return ""
	}
}
