package wallet

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
)

const optKey = "wallet"

// GenesisWallet is a wallet declared in the genesis file.
type GenesisWallet struct {
	Owner   custody.Address   `json:"owner"`
	Signers []custody.Address `json:"signers"`
	Quorum  uint32            `json:"quorum"`
	Deposit *coin.Coin        `json:"deposit,omitempty"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file. Deposits are moved from the owner balance, so the cash
// extension must be initialized first.
type Initializer struct {
	Bank cash.Controller
}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis creates all declared wallets, in order. The first wallet gets
// the ID 1.
func (i *Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var wallets []GenesisWallet
	if err := opts.ReadOptions(optKey, &wallets); err != nil {
		return err
	}

	ctrl := NewController(i.Bank)
	for n, w := range wallets {
		if err := w.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d owner", n)
		}
		msg := CreateWalletMsg{Signers: w.Signers, Quorum: w.Quorum, Deposit: w.Deposit}
		if err := msg.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d", n)
		}
		if _, _, err := ctrl.CreateWallet(kv, w.Owner, w.Signers, w.Quorum, w.Deposit); err != nil {
			return errors.Wrapf(err, "cannot create wallet #%d", n)
		}
	}
	return nil
}
