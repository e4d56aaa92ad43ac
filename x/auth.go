package x

import (
	custody "github.com/iov-one/custody"
)

// Authenticator reports who authorized the transaction being processed.
// Handlers receive one in their constructor instead of reading signatures,
// so that the authentication scheme can change without touching them.
type Authenticator interface {
	// GetConditions returns every condition that authorized the
	// transaction, in signing order.
	GetConditions(custody.Context) []custody.Condition
	// HasAddress reports whether addr authorized the transaction.
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth merges the answers of several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth combines authenticators. Conditions are reported in the order
// of the authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx custody.Context) []custody.Condition {
	var all []custody.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition that authorized the transaction,
// or nil. This is the identity a transaction acts on behalf of.
func MainSigner(ctx custody.Context, auth Authenticator) custody.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}
