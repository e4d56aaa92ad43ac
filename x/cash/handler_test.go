package cash

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer    custody.Condition
		msg       custody.Msg
		wantCheck *errors.Error
		wantErr   *errors.Error
		wantAlice coin.Coin
		wantBob   coin.Coin
	}{
		"valid send": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(4, 0, "IOV"),
			},
			wantAlice: coin.NewCoin(6, 0, "IOV"),
			wantBob:   coin.NewCoin(4, 0, "IOV"),
		},
		"source did not sign": {
			signer: bob,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(4, 0, "IOV"),
			},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: coin.NewCoin(10, 0, "IOV"),
		},
		"not enough funds": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(11, 0, "IOV"),
			},
			wantErr:   errors.ErrAmount,
			wantAlice: coin.NewCoin(10, 0, "IOV"),
		},
		"invalid message": {
			signer: alice,
			msg: &SendMsg{
				Source: alice.Address(),
				Amount: coin.NewCoinp(1, 0, "IOV"),
			},
			wantCheck: errors.ErrInput,
			wantErr:   errors.ErrInput,
			wantAlice: coin.NewCoin(10, 0, "IOV"),
		},
		"unknown message type": {
			signer:    alice,
			msg:       &weavetest.Msg{RoutePath: "cash/send"},
			wantCheck: errors.ErrType,
			wantErr:   errors.ErrType,
			wantAlice: coin.NewCoin(10, 0, "IOV"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			require.NoError(t, ctrl.IssueCoins(db, alice.Address(), coin.NewCoin(10, 0, "IOV")))

			h := NewSendHandler(&weavetest.Auth{Signer: tc.signer}, ctrl)
			tx := &weavetest.Tx{Msg: tc.msg}

			cres, err := h.Check(context.Background(), db, tx)
			if tc.wantCheck != nil {
				require.True(t, tc.wantCheck.Is(err), "unexpected check error: %+v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, sendTxCost, cres.GasAllocated)
			}

			_, err = h.Deliver(context.Background(), db, tx)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected deliver error: %+v", err)
			} else {
				require.NoError(t, err)
			}

			got, err := ctrl.Balance(db, alice.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}
