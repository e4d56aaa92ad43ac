package wallet

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
)

// Controller gives access to the wallet state. It holds all operations that
// modify a wallet and its ledger. Callers are expected to run every
// modification on an atomic store, see utils.RunAtomic.
type Controller struct {
	wallets orm.ModelBucket
	txs     orm.ModelBucket
	bank    cash.Controller
}

// NewController returns a controller that moves funds using the given cash
// controller.
func NewController(bank cash.Controller) Controller {
	return Controller{
		wallets: NewWalletBucket(),
		txs:     NewTransactionBucket(),
		bank:    bank,
	}
}

// Wallet returns the wallet with the given ID or ErrNotFound.
func (c Controller) Wallet(db custody.ReadOnlyKVStore, walletID []byte) (*Wallet, error) {
	var w Wallet
	if err := c.wallets.One(db, walletID, &w); err != nil {
		return nil, errors.Wrapf(err, "wallet %x", walletID)
	}
	return &w, nil
}

// Owner returns the current owner of a wallet.
func (c Controller) Owner(db custody.ReadOnlyKVStore, walletID []byte) (custody.Address, error) {
	w, err := c.Wallet(db, walletID)
	if err != nil {
		return nil, err
	}
	return w.Owner, nil
}

// Signer returns the signer at the given zero based position.
func (c Controller) Signer(db custody.ReadOnlyKVStore, walletID []byte, index int) (custody.Address, error) {
	w, err := c.Wallet(db, walletID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(w.Signers) {
		return nil, errors.Wrapf(errors.ErrNotFound, "signer index %d", index)
	}
	return w.Signers[index], nil
}

// Transactions returns the whole ledger of a wallet, ordered by transaction
// ID. Both pending and released transactions are returned.
func (c Controller) Transactions(db custody.ReadOnlyKVStore, walletID []byte) ([]*Transaction, error) {
	if err := c.wallets.Has(db, walletID); err != nil {
		return nil, errors.Wrapf(err, "wallet %x", walletID)
	}
	var txs []*Transaction
	if _, err := c.txs.ByPrefix(db, walletID, &txs); err != nil {
		return nil, errors.Wrap(err, "ledger")
	}
	return txs, nil
}

// Transaction returns a single ledger entry or ErrNotFound.
func (c Controller) Transaction(db custody.ReadOnlyKVStore, walletID []byte, txID uint64) (*Transaction, error) {
	var t Transaction
	if err := c.txs.One(db, TransactionKey(walletID, txID), &t); err != nil {
		return nil, errors.Wrapf(err, "transaction %d", txID)
	}
	return &t, nil
}

// CreateWallet stores a new wallet and moves the deposit, if any, from the
// owner to the wallet account. The new wallet ID is returned.
func (c Controller) CreateWallet(db custody.KVStore, owner custody.Address, signers []custody.Address, quorum uint32, deposit *coin.Coin) ([]byte, *Wallet, error) {
	if err := validateQuorum(quorum, len(signers)); err != nil {
		return nil, nil, err
	}
	id, err := walletSeq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot acquire ID")
	}
	w := &Wallet{
		Owner:   owner,
		Signers: signers,
		Quorum:  quorum,
		Address: Condition(id).Address(),
	}
	if err := c.wallets.Put(db, id, w); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store wallet")
	}
	if deposit != nil {
		if err := c.bank.MoveCoins(db, owner, w.Address, *deposit); err != nil {
			return nil, nil, errors.Wrap(err, "deposit")
		}
	}
	return id, w, nil
}

// SaveWallet stores the wallet. The wallet is validated, so a state that
// breaks the quorum constraints is never persisted.
func (c Controller) SaveWallet(db custody.KVStore, walletID []byte, w *Wallet) error {
	if err := c.wallets.Put(db, walletID, w); err != nil {
		return errors.Wrap(err, "cannot store wallet")
	}
	return nil
}

// AppendTransaction adds a transaction created by the given signer to the
// ledger. The creator counts as the first approval, so with a quorum of one
// the funds are released right away.
func (c Controller) AppendTransaction(db custody.KVStore, walletID []byte, w *Wallet, creator custody.Address, amount coin.Coin, receiver custody.Address) (*Transaction, error) {
	w.TransactionCount++
	t := &Transaction{
		WalletID:  walletID,
		ID:        w.TransactionCount,
		Amount:    amount,
		Receiver:  receiver,
		Creator:   creator,
		Approvals: []custody.Address{creator},
	}
	if err := c.SaveWallet(db, walletID, w); err != nil {
		return nil, err
	}
	if err := c.releaseOnQuorum(db, w, t); err != nil {
		return nil, err
	}
	if err := c.txs.Put(db, TransactionKey(walletID, t.ID), t); err != nil {
		return nil, errors.Wrap(err, "cannot store transaction")
	}
	return t, nil
}

// AddApproval records the approval of a signer and releases the funds if the
// quorum is reached.
func (c Controller) AddApproval(db custody.KVStore, w *Wallet, t *Transaction, signer custody.Address) error {
	t.Approvals = append(t.Approvals, signer)
	if err := c.releaseOnQuorum(db, w, t); err != nil {
		return err
	}
	if err := c.txs.Put(db, TransactionKey(t.WalletID, t.ID), t); err != nil {
		return errors.Wrap(err, "cannot store transaction")
	}
	return nil
}

// releaseOnQuorum moves the transaction amount to the receiver the first
// time the number of approvals reaches the quorum.
func (c Controller) releaseOnQuorum(db custody.KVStore, w *Wallet, t *Transaction) error {
	if t.Executed || len(t.Approvals) < int(w.Quorum) {
		return nil
	}
	if err := c.bank.MoveCoins(db, w.Address, t.Receiver, t.Amount); err != nil {
		return errors.Wrap(err, "release")
	}
	t.Executed = true
	return nil
}
