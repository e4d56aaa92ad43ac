/*
Package assert provides test helpers that understand the registered errors
of this module. Every helper stops the test on failure.
*/
package assert

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iov-one/custody/errors"
)

// Tester is the part of testing.TB the helpers need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil or a typed nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if value == nil {
		return
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		if v.IsNil() {
			return
		}
	}
	// %+v prints the stack of wrapped errors
	t.Fatalf("want nil, got %+v", value)
}

// Equal fails with a diff if want and got are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Fatalf("%T values differ (-want +got):\n%s", want, diff(want, got))
}

// diff falls back to printing both values when they cannot be compared by
// cmp, for example because of unexported fields.
func diff(want, got interface{}) (out string) {
	defer func() {
		if recover() != nil {
			out = fmt.Sprintf("- %#v\n+ %#v", want, got)
		}
	}()
	return cmp.Diff(want, got)
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	panicked := func() (ok bool) {
		defer func() { ok = recover() != nil }()
		fn()
		return false
	}()
	if !panicked {
		t.Fatal("panic expected")
	}
}

// FieldError checks the errors reported for a single field name. With a nil
// want, no error must be reported for that field. Otherwise exactly one
// error of the wanted kind must be reported.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			logErrors(t, errs)
			t.Fatalf("want no error for %q, got %d", fieldName, len(errs))
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("no error for %q", fieldName)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("want %q for %q, got %q", want, fieldName, errs[0])
		}
	default:
		logErrors(t, errs)
		t.Fatalf("want one error for %q, got %d", fieldName, len(errs))
	}
}

func logErrors(t testing.TB, errs []error) {
	t.Helper()
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}

// IsErr fails unless got is want, or want is a registered error that got
// wraps.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
