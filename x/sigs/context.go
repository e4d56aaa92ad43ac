package sigs

import (
	"context"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

type signersKey struct{}

// withSigners stores the verified signers. Only the decorator of this
// package may call it, so no handler can fake a signature.
func withSigners(ctx custody.Context, signers []custody.Condition) custody.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate reports the keys whose signatures were verified by the
// Decorator, in signing order.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	signers, _ := ctx.Value(signersKey{}).([]custody.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
