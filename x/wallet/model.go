package wallet

import (
	"bytes"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// WalletBucketName is where the wallets are stored.
	WalletBucketName = "wallet"
	// TransactionBucketName is where the ledger of all wallets is stored.
	TransactionBucketName = "wallettx"

	maxSigners = 64
)

var walletSeq = orm.NewSequence(WalletBucketName, "id")

// Condition returns the condition of the wallet account. No key can produce
// it, so funds held on the wallet address can only be moved by this
// extension.
func Condition(walletID []byte) custody.Condition {
	return custody.NewCondition("wallet", "seq", walletID)
}

// Wallet is the state of a single custody wallet.
type Wallet struct {
	// Owner manages the signer list and can nominate a new owner.
	Owner custody.Address `json:"owner"`
	// PendingOwner is nominated by the owner but has no rights until it
	// claims the ownership. Empty if nobody is nominated.
	PendingOwner custody.Address `json:"pending_owner,omitempty"`
	// Signers is the ordered list of accounts that can initiate and
	// approve transactions.
	Signers []custody.Address `json:"signers"`
	// Quorum is the number of distinct approvals required to release
	// funds.
	Quorum uint32 `json:"quorum"`
	// Address is the account holding the wallet funds.
	Address custody.Address `json:"address"`
	// TransactionCount is the identifier of the most recent transaction.
	TransactionCount uint64 `json:"transaction_count"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet is consistent. In particular the quorum must
// always be reachable by the current signers.
func (w *Wallet) Validate() error {
	var err error
	err = errors.AppendField(err, "Owner", w.Owner.Validate())
	if len(w.PendingOwner) != 0 {
		err = errors.AppendField(err, "PendingOwner", w.PendingOwner.Validate())
	}
	err = errors.AppendField(err, "Signers", validateSigners(w.Signers))
	err = errors.AppendField(err, "Quorum", validateQuorum(w.Quorum, len(w.Signers)))
	err = errors.AppendField(err, "Address", w.Address.Validate())
	return err
}

// Copy returns an independent copy.
func (w *Wallet) Copy() orm.Model {
	return &Wallet{
		Owner:            cloneAddr(w.Owner),
		PendingOwner:     cloneAddr(w.PendingOwner),
		Signers:          cloneAddrs(w.Signers),
		Quorum:           w.Quorum,
		Address:          cloneAddr(w.Address),
		TransactionCount: w.TransactionCount,
	}
}

// SignerIndex returns the position of the address in the signer list or -1
// if it is not a signer.
func (w *Wallet) SignerIndex(addr custody.Address) int {
	for i, s := range w.Signers {
		if s.Equals(addr) {
			return i
		}
	}
	return -1
}

// IsSigner returns true if the address is a current signer.
func (w *Wallet) IsSigner(addr custody.Address) bool {
	return w.SignerIndex(addr) >= 0
}

// Marshal serializes the wallet.
func (w *Wallet) Marshal() ([]byte, error) {
	return codec.NewBuffer().
		Bytes(1, w.Owner).
		Bytes(2, w.PendingOwner).
		RepeatedBytes(3, addrsToBytes(w.Signers)).
		Uint32(4, w.Quorum).
		Bytes(5, w.Address).
		Uint64(6, w.TransactionCount).
		Result()
}

// Unmarshal is the inverse of Marshal.
func (w *Wallet) Unmarshal(raw []byte) error {
	*w = Wallet{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			w.Owner, err = f.Bytes()
		case 2:
			w.PendingOwner, err = f.Bytes()
		case 3:
			var s []byte
			if s, err = f.Bytes(); err == nil {
				w.Signers = append(w.Signers, s)
			}
		case 4:
			w.Quorum, err = f.Uint32()
		case 5:
			w.Address, err = f.Bytes()
		case 6:
			w.TransactionCount, err = f.Uint64()
		}
		return err
	})
}

// Transaction is a single proposed fund movement out of a wallet.
type Transaction struct {
	WalletID []byte          `json:"wallet_id"`
	ID       uint64          `json:"id"`
	Amount   coin.Coin       `json:"amount"`
	Receiver custody.Address `json:"receiver"`
	// Creator is the signer that initiated the transaction.
	Creator custody.Address `json:"creator"`
	// Approvals lists distinct approving signers in the order they
	// approved. The creator is always first.
	Approvals []custody.Address `json:"approvals"`
	// Executed is set once the funds were released.
	Executed bool `json:"executed"`
}

var _ orm.Model = (*Transaction)(nil)

// Validate ensures the transaction is consistent.
func (t *Transaction) Validate() error {
	var err error
	err = errors.AppendField(err, "WalletID", orm.ValidateSequence(t.WalletID))
	if t.ID == 0 {
		err = errors.Append(err, errors.Field("ID", errors.ErrEmpty, "missing"))
	}
	if !t.Amount.IsPositive() {
		err = errors.Append(err, errors.Field("Amount", errors.ErrAmount, "non-positive amount"))
	} else {
		err = errors.AppendField(err, "Amount", t.Amount.Validate())
	}
	err = errors.AppendField(err, "Receiver", t.Receiver.Validate())
	err = errors.AppendField(err, "Creator", t.Creator.Validate())
	if len(t.Approvals) == 0 {
		err = errors.Append(err, errors.Field("Approvals", errors.ErrEmpty, "missing"))
	} else {
		err = errors.AppendField(err, "Approvals", validateAddrs(t.Approvals))
	}
	return err
}

// Copy returns an independent copy.
func (t *Transaction) Copy() orm.Model {
	return &Transaction{
		WalletID:  append([]byte(nil), t.WalletID...),
		ID:        t.ID,
		Amount:    t.Amount,
		Receiver:  cloneAddr(t.Receiver),
		Creator:   cloneAddr(t.Creator),
		Approvals: cloneAddrs(t.Approvals),
		Executed:  t.Executed,
	}
}

// HasApproval returns true if the address approved this transaction.
func (t *Transaction) HasApproval(addr custody.Address) bool {
	for _, a := range t.Approvals {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// Marshal serializes the transaction.
func (t *Transaction) Marshal() ([]byte, error) {
	return codec.NewBuffer().
		Bytes(1, t.WalletID).
		Uint64(2, t.ID).
		Message(3, &t.Amount).
		Bytes(4, t.Receiver).
		Bytes(5, t.Creator).
		RepeatedBytes(6, addrsToBytes(t.Approvals)).
		Bool(7, t.Executed).
		Result()
}

// Unmarshal is the inverse of Marshal.
func (t *Transaction) Unmarshal(raw []byte) error {
	*t = Transaction{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			t.WalletID, err = f.Bytes()
		case 2:
			t.ID, err = f.Uint64()
		case 3:
			err = f.Message(&t.Amount)
		case 4:
			t.Receiver, err = f.Bytes()
		case 5:
			t.Creator, err = f.Bytes()
		case 6:
			var a []byte
			if a, err = f.Bytes(); err == nil {
				t.Approvals = append(t.Approvals, a)
			}
		case 7:
			t.Executed, err = f.Bool()
		}
		return err
	})
}

// TransactionKey returns the ledger key of a transaction. All transactions
// of a wallet share the wallet ID prefix and are ordered by their ID.
func TransactionKey(walletID []byte, txID uint64) []byte {
	return append(append([]byte(nil), walletID...), orm.EncodeSequence(txID)...)
}

// NewWalletBucket returns the bucket of all wallets, keyed by wallet ID.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(WalletBucketName, &Wallet{})
}

// NewTransactionBucket returns the ledger bucket, keyed by TransactionKey.
func NewTransactionBucket() orm.ModelBucket {
	return orm.NewModelBucket(TransactionBucketName, &Transaction{})
}

func validateQuorum(quorum uint32, signers int) error {
	if quorum < 1 || int(quorum) > signers {
		return errors.Wrapf(errors.ErrState, "quorum %d out of range [1, %d]", quorum, signers)
	}
	return nil
}

func validateSigners(signers []custody.Address) error {
	switch n := len(signers); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "no signers")
	case n > maxSigners:
		return errors.Wrapf(errors.ErrInput, "too many signers, max %d", maxSigners)
	}
	return validateAddrs(signers)
}

// validateAddrs ensures every address is valid and unique.
func validateAddrs(addrs []custody.Address) error {
	for i, a := range addrs {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "position %d", i)
		}
		for _, b := range addrs[:i] {
			if bytes.Equal(a, b) {
				return errors.Wrapf(errors.ErrDuplicate, "address %s", a)
			}
		}
	}
	return nil
}

func addrsToBytes(addrs []custody.Address) [][]byte {
	res := make([][]byte, len(addrs))
	for i, a := range addrs {
		res[i] = a
	}
	return res
}

func cloneAddr(a custody.Address) custody.Address {
	if a == nil {
		return nil
	}
	return append(custody.Address(nil), a...)
}

func cloneAddrs(addrs []custody.Address) []custody.Address {
	if addrs == nil {
		return nil
	}
	res := make([]custody.Address, len(addrs))
	for i, a := range addrs {
		res[i] = cloneAddr(a)
	}
	return res
}
