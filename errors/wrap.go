package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Wrap adds context to err. The first wrap records the stack trace of the
// call site. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format adds the recorded stack trace to the %+v output.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb != 'v' || !s.Flag('+') {
		return
	}
	if st := stackTrace(e); st != nil {
		fmt.Fprintf(s, "%+v", st)
	}
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace recorded in the error chain.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(inner error) bool {
		if t, ok := inner.(stackTracer); ok {
			st = t.StackTrace()
			return true
		}
		return false
	})
	return st
}
