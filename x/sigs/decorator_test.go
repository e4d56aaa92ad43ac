package sigs

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	const chainID = "deco-rate"
	ctx := custody.WithChainID(context.Background(), chainID)
	priv := crypto.GenPrivKeyEd25519()
	signer := priv.PublicKey().Condition()

	tx := NewStdTx([]byte("approve"))
	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(priv, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	// check and deliver keep separate nonces, as they run on separate
	// states
	phases := map[string]func(db custody.KVStore, h *signersRecorder) error{
		"check": func(db custody.KVStore, h *signersRecorder) error {
			_, err := NewDecorator().Check(ctx, db, tx, h)
			return err
		},
		"deliver": func(db custody.KVStore, h *signersRecorder) error {
			_, err := NewDecorator().Deliver(ctx, db, tx, h)
			return err
		},
	}
	for name, run := range phases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()

			tx.Signatures = nil
			h := new(signersRecorder)
			err := run(db, h)
			assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
			assert.Equal(t, 0, h.calls)

			tx.Signatures = []*StdSignature{sign(0)}
			require.NoError(t, run(db, h))
			assert.Equal(t, []custody.Condition{signer}, h.signers)

			h = new(signersRecorder)
			err = run(db, h)
			assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)
			assert.Equal(t, 0, h.calls)

			tx.Signatures = []*StdSignature{sign(1)}
			require.NoError(t, run(db, h))
			assert.Equal(t, []custody.Condition{signer}, h.signers)
		})
	}
}

func TestDecoratorChargesGas(t *testing.T) {
	const chainID = "gas-chain"
	ctx := custody.WithChainID(context.Background(), chainID)

	tx := NewStdTx([]byte("fee"))
	for i := 0; i < 2; i++ {
		sig, err := SignTx(crypto.GenPrivKeyEd25519(), tx, chainID, 0)
		require.NoError(t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}

	res, err := NewDecorator().Check(ctx, store.MemStore(), tx, new(signersRecorder))
	require.NoError(t, err)
	assert.Equal(t, int64(2*signatureVerifyCost), res.GasAllocated)
}

func TestDecoratorIgnoresUnsignedTxType(t *testing.T) {
	ctx := custody.WithChainID(context.Background(), "plain-chain")
	h := new(signersRecorder)
	plain := NewStdTx([]byte("plain")).Tx
	_, err := NewDecorator().Deliver(ctx, store.MemStore(), plain, h)
	require.NoError(t, err)
	assert.Equal(t, 1, h.calls)
	assert.Empty(t, h.signers)
}

// signersRecorder records the signers it was called with.
type signersRecorder struct {
	calls   int
	signers []custody.Condition
}

var _ custody.Handler = (*signersRecorder)(nil)

func (s *signersRecorder) Check(ctx custody.Context, _ custody.KVStore, _ custody.Tx) (*custody.CheckResult, error) {
	s.calls++
	s.signers = Authenticate{}.GetConditions(ctx)
	return &custody.CheckResult{}, nil
}

func (s *signersRecorder) Deliver(ctx custody.Context, _ custody.KVStore, _ custody.Tx) (*custody.DeliverResult, error) {
	s.calls++
	s.signers = Authenticate{}.GetConditions(ctx)
	return &custody.DeliverResult{}, nil
}
