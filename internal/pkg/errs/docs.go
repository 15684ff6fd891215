// Package errs provides standardized error types for the order desk.
// Each type pairs a sentinel error (matched with errors.Is) with a struct
// carrying the offending parameter, built through constructors with and
// without a cause.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but malformed
//   - ValueIsOutOfRangeError: a value falls outside its allowed bounds
//   - ObjectNotFoundError: a lookup matched nothing
//
// The three value errors are user-correctable; IsValidation groups them so
// transport adapters can map them to a single "bad request" outcome.
package errs
