// Package errs provides the typed errors shared by the activation service.
//
// Every error type wraps one sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired) through Unwrap, so callers classify
// failures with errors.Is and read details with errors.As.
package errs
