/*
Package sigs verifies the ed25519 signatures of transactions and keeps a
nonce per key for replay protection. Handlers learn the verified signers
through the Authenticate authenticator.
*/
package sigs

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// signatureVerifyCost is the gas charged per verified signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the nonces as "/auth".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator rejects signed transactions without a valid signature and
// passes the signers down the chain. Transactions that cannot carry
// signatures pass through unchanged.
type Decorator struct{}

var _ custody.Decorator = Decorator{}

// NewDecorator returns the signature verification decorator.
func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = new(custody.CheckResult)
	}
	res.GasAllocated += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate verifies the signatures and returns the context carrying
// the signers, together with the number of verified signatures.
func (Decorator) authenticate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (custody.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, custody.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
