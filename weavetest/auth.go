package weavetest

import (
	"context"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// NewCondition returns the signature condition of a fresh ed25519 key.
func NewCondition() custody.Condition {
	return crypto.GenPrivKeyEd25519().PublicKey().Condition()
}

// Auth authenticates a single fixed signer. The zero value authenticates
// nobody.
type Auth struct {
	Signer custody.Condition
}

func (a *Auth) GetConditions(custody.Context) []custody.Condition {
	if a.Signer == nil {
		return nil
	}
	return []custody.Condition{a.Signer}
}

func (a *Auth) HasAddress(_ custody.Context, addr custody.Address) bool {
	return a.Signer != nil && addr.Equals(a.Signer.Address())
}

type ctxAuthKey string

// CtxAuth authenticates the conditions stored in the context under Key.
// Use a different key for each instance to simulate independent
// authenticators.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx custody.Context, conds ...custody.Condition) custody.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx custody.Context) []custody.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]custody.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
