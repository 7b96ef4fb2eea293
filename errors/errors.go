// Package errors provides error handling for the protocol core.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// It also defines the protocol's error taxonomy as sentinel errors.
// Structural and relational violations are errors; cryptographic
// mismatches (bad signature, bad proof, bad seal key) are booleans
// returned by verification predicates and never appear here.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the protocol core.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrapf() to name the offending field.
var (
	// ErrInvalidInput indicates a required relational field (prev, orig,
	// permalink, prevlink, prevheader) is missing or mismatched, curve
	// identifiers differ on combine, or a signature encoding is malformed.
	ErrInvalidInput = New("invalid input")

	// ErrInvalidVersion indicates a version-number/permalink-chain
	// invariant was violated. It wraps ErrInvalidInput so callers checking
	// the broader kind still match.
	ErrInvalidVersion = Wrap(ErrInvalidInput, "invalid version")

	// ErrInvalidProperty indicates a structural rule on the object itself
	// is violated: missing type, undefined value, missing author.
	ErrInvalidProperty = New("invalid property")

	// ErrNotSigned indicates an operation that requires a signed object
	// was given an unsigned one.
	ErrNotSigned = New("object must be signed")

	// ErrSigned indicates an operation that requires an unsigned object
	// was given a signed one.
	ErrSigned = New("object must not be signed")
)

// InvalidInputf creates an ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

// InvalidVersionf creates an ErrInvalidVersion naming the offending field.
func InvalidVersionf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidVersion, Newf(format, args...).Error())
}

// InvalidPropertyf creates an ErrInvalidProperty with a formatted message.
func InvalidPropertyf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidProperty, Newf(format, args...).Error())
}

// IsInvalidInput checks if an error is or wraps ErrInvalidInput.
// ErrInvalidVersion errors match as well.
func IsInvalidInput(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// IsInvalidVersion checks if an error is or wraps ErrInvalidVersion.
func IsInvalidVersion(err error) bool {
	return err != nil && Is(err, ErrInvalidVersion)
}

// IsInvalidProperty checks if an error is or wraps ErrInvalidProperty.
func IsInvalidProperty(err error) bool {
	return err != nil && Is(err, ErrInvalidProperty)
}
