package errors

import (
	"io"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"success": {},
		"typed nil": {
			err: (*Error)(nil),
		},
		"root error": {
			err:      ErrNotFound,
			wantCode: 3,
			wantLog:  "not found",
		},
		"wrapped": {
			err:      Wrap(Wrap(ErrUnauthorized, "not valid signer"), "initiate"),
			wantCode: 2,
			wantLog:  "initiate: not valid signer: unauthorized",
		},
		"internal": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"internal in debug mode": {
			err:      Wrap(io.EOF, "cannot read file"),
			debug:    true,
			wantCode: 1,
			wantLog:  "cannot read file: EOF",
		},
		"list": {
			err:      Append(ErrEmpty, ErrState),
			wantCode: 9,
			wantLog:  "2 errors occurred:\n\t* value is empty\n\t* invalid state\n",
		},
		"foreign coder": {
			err:      Wrap(customErr{}, "plugin"),
			wantCode: 999,
			wantLog:  "plugin: custom",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode || log != tc.wantLog {
				t.Errorf("want (%d, %q), got (%d, %q)", tc.wantCode, tc.wantLog, code, log)
			}
		})
	}
}

func TestABCIError(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrDuplicate, "can't sign twice"), false)
	if err := ABCIError(code, log); !ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}
	if err := ABCIError(SuccessABCICode, ""); err != nil {
		t.Fatalf("success must not produce an error: %v", err)
	}
	if code, _ := ABCIInfo(ABCIError(4242, "strange"), false); code != 4242 {
		t.Fatalf("unknown code not preserved: %d", code)
	}
}

func TestRedact(t *testing.T) {
	cases := []struct {
		err   error
		debug bool
		keep  bool
	}{
		{err: Wrap(ErrPanic, "index out of range"), keep: false},
		{err: Wrap(ErrPanic, "index out of range"), debug: true, keep: true},
		{err: ErrUnauthorized, keep: true},
		{err: io.EOF, keep: false},
		{err: io.EOF, debug: true, keep: true},
	}
	for i, tc := range cases {
		got := Redact(tc.err, tc.debug)
		if kept := got == tc.err; kept != tc.keep {
			t.Errorf("%d: redact %v gave %v", i, tc.err, got)
		}
	}
	if Redact(nil, false) != nil {
		t.Error("nil must stay nil")
	}
}

type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }
