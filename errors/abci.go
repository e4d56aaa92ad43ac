package errors

import (
	"errors"
)

const (
	// SuccessABCICode is the code of a response without error.
	SuccessABCICode = 0

	// Errors without a code of their own are reported as internal, with
	// a message that hides their details.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo converts err into the code and log of an ABCI response. Outside
// of debug mode the log of an internal error is replaced by a generic one.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	if debug {
		return code, err.Error()
	}
	if code == internalABCICode {
		return code, internalABCILog
	}
	return code, err.Error()
}

// ABCIError rebuilds an error from a response code and log, so a client can
// test its kind with Is. Unknown codes are preserved.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	root, ok := registry[code]
	if !ok {
		root = &Error{code: code, desc: "unknown error"}
	}
	return Wrap(root, log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode is the code of the outermost error in the chain that has one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	code := internalABCICode
	walk(err, func(inner error) bool {
		c, ok := inner.(coder)
		if ok {
			code = c.ABCICode()
		}
		return ok
	})
	return code
}

// Redact hides errors that are internal or come from a panic behind a
// generic error. It returns err unchanged in debug mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
