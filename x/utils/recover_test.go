package utils

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
)

// panicHandler panics with the configured value on every call.
type panicHandler struct {
	value interface{}
}

func (p panicHandler) Check(custody.Context, custody.KVStore, custody.Tx) (*custody.CheckResult, error) {
	panic(p.value)
}

func (p panicHandler) Deliver(custody.Context, custody.KVStore, custody.Tx) (*custody.DeliverResult, error) {
	panic(p.value)
}

func TestRecovery(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()

	cases := map[string]struct {
		next    custody.Handler
		wantErr *errors.Error
	}{
		"string panic":    {next: panicHandler{value: "quorum exploded"}, wantErr: errors.ErrPanic},
		"error panic":     {next: panicHandler{value: errors.ErrState}, wantErr: errors.ErrPanic},
		"plain error":     {next: &weavetest.Handler{CheckErr: errors.ErrState, DeliverErr: errors.ErrState}, wantErr: errors.ErrState},
		"no error at all": {next: &weavetest.Handler{}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRecovery().Check(ctx, db, nil, tc.next)
			assert.True(t, tc.wantErr.Is(err), "check: %+v", err)
			_, err = NewRecovery().Deliver(ctx, db, nil, tc.next)
			assert.True(t, tc.wantErr.Is(err), "deliver: %+v", err)
		})
	}
}
