// Package errs provides standardized error types for the delivery application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the scenarios the delivery lifecycle produces:
//   - ObjectNotFoundError: a referenced delivery record does not exist
//   - ObjectAlreadyExistsError: a delivery record for the order already exists
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value does not satisfy its constraints
//   - InvalidTransitionError: a status change the transition table does not allow
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Transport layers (HTTP handlers, event consumers) rely exclusively on the
// sentinels for classification: ErrObjectNotFound maps to a 404 or a
// dead-letter, ErrInvalidTransition maps to a 409 or an idempotent no-op,
// depending on the calling path.
package errs
