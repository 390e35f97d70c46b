// Package errs provides standardized error types for the consignment engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the engine's full error taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input, rejected locally and never persisted
//   - ObjectNotFoundError: a referenced object does not exist
//   - ConflictError: an illegal lifecycle transition or a lost concurrent
//     update, surfaced to the caller with no retry by the engine itself
//   - StaleSampleError: an out-of-order location sample, dropped and logged
//   - ExternalServiceError: a geo-provider or event-bus failure, which skips
//     the affected work for the current pass rather than failing it
//
// Each error type follows the same pattern: a sentinel error variable, a
// struct with fields for error details, constructors with and without cause,
// an Error() method, and an Unwrap() method so errors.Is classification works
// everywhere.
package errs
