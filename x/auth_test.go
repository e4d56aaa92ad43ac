package x

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestChainAuth(t *testing.T) {
	owner := weavetest.NewCondition()
	signer := weavetest.NewCondition()
	outsider := weavetest.NewCondition()

	sigs := &weavetest.CtxAuth{Key: "sigs"}
	other := &weavetest.CtxAuth{Key: "other"}
	signed := sigs.SetConditions(context.Background(), signer, owner)

	cases := map[string]struct {
		ctx      custody.Context
		auth     Authenticator
		want     []custody.Condition
		main     custody.Condition
		excluded custody.Condition
	}{
		"nobody signed": {
			ctx:      context.Background(),
			auth:     ChainAuth(),
			excluded: owner,
		},
		"single authenticator": {
			ctx:      context.Background(),
			auth:     ChainAuth(&weavetest.Auth{Signer: owner}),
			want:     []custody.Condition{owner},
			main:     owner,
			excluded: signer,
		},
		"authenticator order wins": {
			ctx:      context.Background(),
			auth:     ChainAuth(&weavetest.Auth{Signer: signer}, &weavetest.Auth{Signer: owner}),
			want:     []custody.Condition{signer, owner},
			main:     signer,
			excluded: outsider,
		},
		"signing order is kept": {
			ctx:      signed,
			auth:     ChainAuth(other, sigs),
			want:     []custody.Condition{signer, owner},
			main:     signer,
			excluded: outsider,
		},
		"conditions stored under another key are ignored": {
			ctx:      signed,
			auth:     ChainAuth(other),
			excluded: signer,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.auth.GetConditions(tc.ctx))
			assert.Equal(t, tc.main, MainSigner(tc.ctx, tc.auth))
			for _, c := range tc.want {
				if !tc.auth.HasAddress(tc.ctx, c.Address()) {
					t.Errorf("%s not authenticated", c.Address())
				}
			}
			if tc.auth.HasAddress(tc.ctx, tc.excluded.Address()) {
				t.Errorf("%s must not be authenticated", tc.excluded.Address())
			}
		})
	}
}
