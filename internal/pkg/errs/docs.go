// Package errs provides the standardized error types used across the
// application. Every type follows the same pattern: a sentinel error variable
// for errors.Is matching, a struct carrying the error details, constructor
// functions with and without an underlying cause, an Error method for
// formatting, and an Unwrap method that returns the sentinel.
//
// The types cover the recurring validation scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but invalid
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed bounds
//   - ObjectNotFoundError: a referenced object does not exist
//
// Domain-specific conditions (invalid transitions, capacity limits, service
// area violations) live as sentinels in the packages that own them and are
// matched with errors.Is at the call boundary.
package errs
