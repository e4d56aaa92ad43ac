package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of the offending field to err. A nil err gives a
// nil result, so validations chain naturally:
//
//	errs = errors.AppendField(errs, "Quorum", validateQuorum(q))
//
// Nested and iterable fields use the dot notation, for example Signers.2.
func Field(name string, err error, format string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	desc := format
	if len(args) != 0 {
		desc = fmt.Sprintf(format, args...)
	}
	return &fieldError{name: name, desc: desc, parent: err}
}

// AppendField adds a field error to a possibly nil error list.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name   string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.parent)
	}
	return fmt.Sprintf("field %q: %s", e.name, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.name }

type fielder interface {
	Field() string
}

// FieldErrors collects every error reported for the named field, looking
// through wrapped errors and error lists.
func FieldErrors(err error, name string) []error {
	if errIsNil(err) {
		return nil
	}
	if f, ok := err.(fielder); ok && f.Field() == name {
		return []error{err}
	}
	if u, ok := err.(unpacker); ok {
		var found []error
		for _, inner := range u.Unpack() {
			found = append(found, FieldErrors(inner, name)...)
		}
		return found
	}
	if c, ok := err.(causer); ok {
		return FieldErrors(c.Cause(), name)
	}
	return nil
}
