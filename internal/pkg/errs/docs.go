// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the error kinds the orchestration core reports:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value falls outside its allowed bounds
//   - ObjectNotFoundError: an object cannot be found
//   - VersionIsInvalidError: an aggregate version is unusable
//   - StaleStateError: a concurrent writer won an optimistic-lock race
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrStaleState)
//   - A struct type with fields for error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Classify errors with errors.Is against the sentinels rather than
// matching concrete struct types.
package errs
