package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error is given, nil is returned. If a single error is given, it is
// returned unchanged. Otherwise a list error is returned that reports the
// ABCI code of the first contained error.
func Append(errs ...error) error {
	var list multiErr
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if other, ok := err.(multiErr); ok {
			list = append(list, other...)
		} else {
			list = append(list, err)
		}
	}

	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	default:
		return list
	}
}

// multiErr is a flat list of errors.
type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(errs), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error, which is consistent with a
// fail fast validation.
func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}

// Unpack returns all contained errors.
func (errs multiErr) Unpack() []error {
	return errs
}

var (
	_ coder    = multiErr(nil)
	_ unpacker = multiErr(nil)
)
