package iamauth

import (
	"errors"
	"fmt"
)

// MalformedHostnameError indicates the hostname is not shaped like an RDS
// endpoint at all, so no region can be looked for in it.
type MalformedHostnameError struct {
	Hostname string
}

func (e *MalformedHostnameError) Error() string {
	return fmt.Sprintf("iamauth: hostname %q is not an RDS endpoint", e.Hostname)
}

// RegionNotFoundError indicates the hostname carries the RDS service suffix
// but no region segment could be extracted from it.
type RegionNotFoundError struct {
	Hostname string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("iamauth: region not found, hostname %q did not contain a parseable region", e.Hostname)
}

// ValidationError indicates a connection parameter that cannot be used to
// build a token request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("iamauth: invalid %s: %s", e.Field, e.Message)
}

// TokenGenerationError wraps a failure to resolve credentials or to sign an
// authentication token. Op names the step that failed.
type TokenGenerationError struct {
	Op    string
	Cause error
}

func (e *TokenGenerationError) Error() string {
	return fmt.Sprintf("iamauth: token generation failed during %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for errors.As/Is support.
func (e *TokenGenerationError) Unwrap() error {
	return e.Cause
}

// IsMalformedHostname returns true if the error is a MalformedHostnameError.
func IsMalformedHostname(err error) bool {
	var target *MalformedHostnameError
	return errors.As(err, &target)
}

// IsRegionNotFound returns true if the error is a RegionNotFoundError.
func IsRegionNotFound(err error) bool {
	var target *RegionNotFoundError
	return errors.As(err, &target)
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsTokenGeneration returns true if the error is a TokenGenerationError.
func IsTokenGeneration(err error) bool {
	var target *TokenGenerationError
	return errors.As(err, &target)
}
