// Package errs provides standardized error types for the parcelflow application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by value objects, the message codec and the repositories.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value (e.g. a message field) is missing
//   - ValueIsInvalidError: a value is present but malformed
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed bounds
//   - ObjectNotFoundError: an object (order, mailbox) cannot be found
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
package errs
