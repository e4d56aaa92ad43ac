/*
Package errors implements the error handling used across the custody
application.

Reuse the root errors declared in this package whenever possible. An extension
that requires a distinct kind, so that clients can act on it, registers it
with Register(code, description). Create runtime errors with
errors.Wrap(ErrXyz, "...") at the point of failure so that a stack trace is
attached. Only the innermost wrap records the stack.

The ABCI code of the root error is returned to the client, together with the
message unless the error is internal (see ABCIInfo and Redact).

Formatting an error with %+v prints the stack trace of the creation point.
*/
package errors
