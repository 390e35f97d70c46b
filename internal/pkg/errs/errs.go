package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as classification anchors for errors.Is checks.
// Every concrete error type in this package unwraps to exactly one of them.
var (
	// ErrObjectNotFound indicates a requested object does not exist in storage.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid indicates a value failed a business validation rule.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange indicates a value is outside its permitted bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrValueIsRequired indicates a mandatory value is missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrConflict indicates the requested change contradicts current state:
	// an illegal lifecycle transition or a concurrent competing update that
	// already won. The caller should not retry blindly.
	ErrConflict = errors.New("conflict")

	// ErrStaleSample indicates an incoming location sample is older than the
	// one already stored. Such samples are dropped, never persisted.
	ErrStaleSample = errors.New("sample is stale")

	// ErrExternalService indicates a dependency outside this engine (geo
	// provider, event bus) failed or timed out. The affected operation is
	// skipped for the current pass, not failed permanently.
	ErrExternalService = errors.New("external service failed")
)

// sanitize flattens multi-line values so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " ")
}

func causeSuffix(cause error) string {
	if cause == nil {
		return ""
	}
	return fmt.Sprintf(" (cause: %s)", sanitize(cause.Error()))
}

// ObjectNotFoundError reports that an object identified by ID was not found.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s%s",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), causeSuffix(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports that a named value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrValueIsInvalid, e.ParamName, causeSuffix(e.Cause))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports that a named value is outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return fmt.Sprintf("value is invalid: %v is %s, min value is %v, max value is %v%s",
		sanitizeAny(e.Value), e.ParamName, e.Min, e.Max, causeSuffix(e.Cause))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// sanitizeAny is sanitize for values that may not be strings.
func sanitizeAny(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError reports that a mandatory named value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrValueIsRequired, e.ParamName, causeSuffix(e.Cause))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ConflictError reports an illegal state transition or a lost concurrent
// update. Details describe the conflict in domain terms, e.g.
// "Delivered is not a valid status to confirm pickup".
type ConflictError struct {
	Details string
	Cause   error
}

// NewConflictError creates a ConflictError without a cause.
func NewConflictError(details string) *ConflictError {
	return &ConflictError{Details: details}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(details string, cause error) *ConflictError {
	return &ConflictError{Details: details, Cause: cause}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrConflict, sanitize(e.Details), causeSuffix(e.Cause))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// StaleSampleError reports a location sample older than the stored one.
// It is logged and dropped; clients cannot act on it, so it never surfaces
// as a caller-visible failure.
type StaleSampleError struct {
	ParamName string
	Cause     error
}

// NewStaleSampleError creates a StaleSampleError without a cause.
func NewStaleSampleError(paramName string) *StaleSampleError {
	return &StaleSampleError{ParamName: paramName}
}

// NewStaleSampleErrorWithCause creates a StaleSampleError wrapping an underlying cause.
func NewStaleSampleErrorWithCause(paramName string, cause error) *StaleSampleError {
	return &StaleSampleError{ParamName: paramName, Cause: cause}
}

func (e *StaleSampleError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrStaleSample, e.ParamName, causeSuffix(e.Cause))
}

func (e *StaleSampleError) Unwrap() error {
	return ErrStaleSample
}

// ExternalServiceError reports a failure or timeout of an external dependency.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an ExternalServiceError without a cause.
func NewExternalServiceError(service string) *ExternalServiceError {
	return &ExternalServiceError{Service: service}
}

// NewExternalServiceErrorWithCause creates an ExternalServiceError wrapping an underlying cause.
func NewExternalServiceErrorWithCause(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrExternalService, e.Service, causeSuffix(e.Cause))
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}
