package errors

import (
	"fmt"
	"reflect"
)

// Root errors shared by all extensions. The code is part of the ABCI
// response, so a code must never change once released.
var (
	// ErrUnauthorized: the caller lacks the required role or signature.
	ErrUnauthorized = Register(2, "unauthorized")
	// ErrNotFound: a referenced wallet, transaction or entry is missing.
	ErrNotFound = Register(3, "not found")
	// ErrMsg: the message cannot be handled.
	ErrMsg = Register(4, "invalid message")
	// ErrModel: the model cannot be persisted.
	ErrModel = Register(5, "invalid model")
	// ErrDuplicate: a value that must be unique is already present.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks code paths that are unreachable in correct code.
	ErrHuman = Register(7, "coding error")
	// ErrImmutable: the value cannot be changed after creation.
	ErrImmutable = Register(8, "cannot be modified")
	// ErrEmpty: a required value is missing.
	ErrEmpty = Register(9, "value is empty")
	// ErrState: the operation would break an invariant of its target.
	ErrState = Register(10, "invalid state")
	// ErrType: a value is not of the expected type.
	ErrType = Register(11, "invalid type")
	// ErrAmount: an amount is insufficient or not acceptable.
	ErrAmount = Register(12, "invalid amount")
	// ErrInput covers malformed input without a better kind.
	ErrInput = Register(13, "invalid input")
	// ErrOverflow: a result is outside of the value range.
	ErrOverflow = Register(14, "an operation cannot be completed due to value overflow")
	// ErrCurrency: amounts of different tickers were combined.
	ErrCurrency = Register(15, "currency mismatch")
	// ErrDatabase: the storage layer failed.
	ErrDatabase = Register(16, "database")

	// ErrPanic is the kind of a recovered panic. Its message is always
	// redacted outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry maps every code in use to its root error. Code 1 stands for all
// errors without a code.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a new root error. Extensions call it from a package
// level var declaration. It panics if the code is taken.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error kind. Runtime errors wrap one of them, which
// selects their ABCI code and lets callers test for the kind with Is.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode is the code returned to the client for this kind.
func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is of this kind. It follows Cause and looks into
// every member of an error list. A nil kind only matches a nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	return walk(err, func(inner error) bool {
		k, ok := inner.(*Error)
		return ok && k == e
	})
}

// causer is implemented by errors that wrap another error.
type causer interface {
	Cause() error
}

// unpacker is implemented by errors that group several errors together.
type unpacker interface {
	Unpack() []error
}

// walk calls visit on err and on every error it wraps or groups, depth
// first, until visit returns true.
func walk(err error, visit func(error) bool) bool {
	for !errIsNil(err) {
		if visit(err) {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, inner := range u.Unpack() {
				if walk(inner, visit) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// errIsNil also treats a typed nil pointer as nil.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
