// Package errs provides standardized error types for the magic mover service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for input validation:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - VersionIsInvalidError: For when a concurrency version token is malformed
//
// And error types for the mover lifecycle:
//   - ObjectNotFoundError / ObjectsNotFoundError: referenced mover or items do not exist
//   - InvalidTransitionError: the requested action is not legal from the current state
//   - DuplicateItemError: an item is already aboard the mover
//   - CapacityExceededError: a load would exceed the mover's weight limit
//   - ConcurrencyConflictError: the optimistic version check failed
//   - PersistenceError: the underlying storage failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is works
//
// Callers classify errors with errors.Is against the sentinels and read details
// with errors.As against the struct types.
package errs
