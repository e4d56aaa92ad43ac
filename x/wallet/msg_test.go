package wallet

import (
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestMsgValidate(t *testing.T) {
	s1, s2 := weavetest.NewCondition().Address(), weavetest.NewCondition().Address()
	id := weavetest.SequenceID(1)

	cases := map[string]struct {
		msg  custody.Msg
		want map[string]*errors.Error
	}{
		"valid create": {
			msg:  &CreateWalletMsg{Signers: []custody.Address{s1, s2}, Quorum: 2, Deposit: coin.NewCoinp(1, 0, "IOV")},
			want: map[string]*errors.Error{"Signers": nil, "Quorum": nil, "Deposit": nil},
		},
		"create without a deposit": {
			msg:  &CreateWalletMsg{Signers: []custody.Address{s1}, Quorum: 1},
			want: map[string]*errors.Error{"Deposit": nil},
		},
		"create with a zero deposit": {
			msg:  &CreateWalletMsg{Signers: []custody.Address{s1}, Quorum: 1, Deposit: coin.NewCoinp(0, 0, "IOV")},
			want: map[string]*errors.Error{"Deposit": errors.ErrAmount},
		},
		"create with quorum out of range": {
			msg:  &CreateWalletMsg{Signers: []custody.Address{s1}, Quorum: 2},
			want: map[string]*errors.Error{"Quorum": errors.ErrState, "Signers": nil},
		},
		"create with an invalid signer": {
			msg:  &CreateWalletMsg{Signers: []custody.Address{s1, custody.Address("short")}, Quorum: 1},
			want: map[string]*errors.Error{"Signers": errors.ErrInput},
		},
		"valid initiate": {
			msg:  &InitiateTransactionMsg{WalletID: id, Amount: coin.NewCoinp(1, 0, "IOV"), Receiver: s1},
			want: map[string]*errors.Error{"WalletID": nil, "Amount": nil, "Receiver": nil},
		},
		"initiate without amount": {
			msg:  &InitiateTransactionMsg{WalletID: id, Receiver: s1},
			want: map[string]*errors.Error{"Amount": errors.ErrAmount},
		},
		"initiate with an invalid wallet id": {
			msg:  &InitiateTransactionMsg{WalletID: []byte("1"), Amount: coin.NewCoinp(1, 0, "IOV"), Receiver: s1},
			want: map[string]*errors.Error{"WalletID": errors.ErrInput},
		},
		"approve transaction zero": {
			msg:  &ApproveTransactionMsg{WalletID: id},
			want: map[string]*errors.Error{"WalletID": nil, "TransactionID": nil},
		},
		"transfer to nobody": {
			msg:  &TransferOwnershipMsg{WalletID: id},
			want: map[string]*errors.Error{"NewOwner": errors.ErrInput},
		},
		"claim without wallet": {
			msg:  &ClaimOwnershipMsg{},
			want: map[string]*errors.Error{"WalletID": errors.ErrEmpty},
		},
		"add invalid signer": {
			msg:  &AddSignerMsg{WalletID: id, Signer: custody.Address("x")},
			want: map[string]*errors.Error{"Signer": errors.ErrInput},
		},
		"remove first signer": {
			msg:  &RemoveSignerMsg{WalletID: id},
			want: map[string]*errors.Error{"WalletID": nil},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.want {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestMsgSerialization(t *testing.T) {
	s1, s2 := weavetest.NewCondition().Address(), weavetest.NewCondition().Address()
	id := weavetest.SequenceID(4)

	cases := map[string]struct {
		msg  custody.Msg
		dest custody.Msg
	}{
		"create": {
			msg:  &CreateWalletMsg{Signers: []custody.Address{s1, s2}, Quorum: 2, Deposit: coin.NewCoinp(3, 0, "IOV")},
			dest: &CreateWalletMsg{},
		},
		"initiate": {
			msg:  &InitiateTransactionMsg{WalletID: id, Amount: coin.NewCoinp(0, 1, "IOV"), Receiver: s2},
			dest: &InitiateTransactionMsg{},
		},
		"approve": {
			msg:  &ApproveTransactionMsg{WalletID: id, TransactionID: 300},
			dest: &ApproveTransactionMsg{},
		},
		"remove signer": {
			msg:  &RemoveSignerMsg{WalletID: id, Index: 5},
			dest: &RemoveSignerMsg{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := tc.msg.Marshal()
			assert.Nil(t, err)
			assert.Nil(t, tc.dest.Unmarshal(raw))
			assert.Equal(t, tc.msg, tc.dest)
		})
	}
}
