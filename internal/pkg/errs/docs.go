// Package errs provides the typed failures returned by the restaurant engine.
//
// Every failure is recoverable and is reported to the calling collaborator as a
// typed value. Two families exist:
//   - validation errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError and ObjectNotFoundError
//   - rule violations: DomainError carrying one of the domain kinds
//     (ErrInsufficientFunds, ErrBlacklisted, ErrInvalidTransition, ...)
//
// Each type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired)
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - Error() formatting the message
//   - Unwrap() returning the sentinel, so callers classify with errors.Is
package errs
