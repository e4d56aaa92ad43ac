package errors

import (
	"reflect"
	"testing"
)

func TestAppend(t *testing.T) {
	cases := map[string]struct {
		errs []error
		want error
	}{
		"nothing": {
			errs: nil,
			want: nil,
		},
		"only nils": {
			errs: []error{nil, (*Error)(nil)},
			want: nil,
		},
		"single error is returned as is": {
			errs: []error{nil, ErrEmpty},
			want: ErrEmpty,
		},
		"lists are flattened": {
			errs: []error{Append(ErrEmpty, ErrState), ErrAmount},
			want: multiErr{ErrEmpty, ErrState, ErrAmount},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Append(tc.errs...); !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("want %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		emptySignersErr = Field("Signers", ErrEmpty, "required")
		quorumErr       = Field("Quorum", ErrState, "must not exceed %d", 3)
		dupSignerErr    = Field("Signers.2", ErrDuplicate, "")
		walletErr       = Field("Wallet", Append(quorumErr, dupSignerErr), "invalid")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"a single error found by the name": {
			err:   emptySignersErr,
			field: "Signers",
			want:  []error{emptySignersErr},
		},
		"error found within a list": {
			err:   Append(emptySignersErr, quorumErr, Field("Signers", ErrInput, "")),
			field: "Quorum",
			want:  []error{quorumErr},
		},
		"field can contain a list": {
			err:   walletErr,
			field: "Wallet",
			want:  []error{walletErr},
		},
		"field can inspect errors tree to find match": {
			err:   walletErr,
			field: "Signers.2",
			want:  []error{dupSignerErr},
		},
		"nil error returns nothing": {
			err:   nil,
			field: "Quorum",
			want:  nil,
		},
		"field not found": {
			err:   walletErr,
			field: "Owner",
			want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFieldErrorMessage(t *testing.T) {
	err := Field("Quorum", ErrState, "must not exceed %d", 3)
	if got, want := err.Error(), `field "Quorum": must not exceed 3: invalid state`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if Field("Quorum", nil, "ignored") != nil {
		t.Fatal("nil error must produce no field error")
	}
	if got := AppendField(nil, "Owner", ErrEmpty); !ErrEmpty.Is(got) {
		t.Fatalf("want empty error, got %v", got)
	}
}
