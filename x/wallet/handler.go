package wallet

import (
	"encoding/hex"
	"strconv"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createWalletCost      int64 = 300
	initiateTxCost        int64 = 100
	approveTxCost         int64 = 50
	transferOwnershipCost int64 = 50
	claimOwnershipCost    int64 = 50
	updateSignersCost     int64 = 50
)

// Tag keys added to the delivery result.
const (
	WalletTagKey      = "wallet"
	TransactionTagKey = "transaction"
	ReleasedTagKey    = "released"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, bank cash.Controller) {
	ctrl := NewController(bank)
	r.Handle(pathCreateWalletMsg, CreateWalletHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathInitiateTransactionMsg, InitiateTransactionHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathApproveTransactionMsg, ApproveTransactionHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferOwnershipMsg, TransferOwnershipHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathClaimOwnershipMsg, ClaimOwnershipHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathAddSignerMsg, AddSignerHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathRemoveSignerMsg, RemoveSignerHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery registers wallets as "/wallets" and the ledger as
// "/wallettxs". Use the prefix query with a wallet ID to list all
// transactions of a wallet.
func RegisterQuery(qr custody.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
	NewTransactionBucket().Register("wallettxs", qr)
}

// caller returns the address of the transaction main signer.
func caller(ctx custody.Context, auth x.Authenticator) (custody.Address, error) {
	main := x.MainSigner(ctx, auth)
	if main == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return main.Address(), nil
}

// loadOwned returns the wallet and ensures the caller is its owner.
func loadOwned(db custody.ReadOnlyKVStore, ctrl Controller, walletID []byte, owner custody.Address) (*Wallet, error) {
	w, err := ctrl.Wallet(db, walletID)
	if err != nil {
		return nil, err
	}
	if !w.Owner.Equals(owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not owner")
	}
	return w, nil
}

// loadSigned returns the wallet and ensures the caller is its current signer.
func loadSigned(db custody.ReadOnlyKVStore, ctrl Controller, walletID []byte, signer custody.Address) (*Wallet, error) {
	w, err := ctrl.Wallet(db, walletID)
	if err != nil {
		return nil, err
	}
	if !w.IsSigner(signer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not valid signer")
	}
	return w, nil
}

func walletTag(walletID []byte) common.KVPair {
	return custody.Tag(WalletTagKey, hex.EncodeToString(walletID))
}

func transactionTags(t *Transaction) []common.KVPair {
	id := strconv.FormatUint(t.ID, 10)
	tags := []common.KVPair{
		walletTag(t.WalletID),
		custody.Tag(TransactionTagKey, id),
	}
	if t.Executed {
		tags = append(tags, custody.Tag(ReleasedTagKey, id))
	}
	return tags
}

// CreateWalletHandler creates wallets owned by the main signer.
type CreateWalletHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = CreateWalletHandler{}

func (h CreateWalletHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: createWalletCost}, nil
}

func (h CreateWalletHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	var id []byte
	err = utils.RunAtomic(db, func(db custody.KVStore) error {
		var err error
		id, _, err = h.ctrl.CreateWallet(db, owner, msg.Signers, msg.Quorum, msg.Deposit)
		return err
	})
	if err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Info("wallet created", "wallet", hex.EncodeToString(id), "owner", owner)
	return &custody.DeliverResult{
		Data: id,
		Tags: []common.KVPair{walletTag(id)},
	}, nil
}

func (h CreateWalletHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CreateWalletMsg, custody.Address, error) {
	var msg CreateWalletMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

// InitiateTransactionHandler appends a transaction to the wallet ledger.
type InitiateTransactionHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = InitiateTransactionHandler{}

func (h InitiateTransactionHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: initiateTxCost}, nil
}

func (h InitiateTransactionHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, w, creator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	var t *Transaction
	err = utils.RunAtomic(db, func(db custody.KVStore) error {
		var err error
		t, err = h.ctrl.AppendTransaction(db, msg.WalletID, w, creator, *msg.Amount, msg.Receiver)
		return err
	})
	if err != nil {
		return nil, err
	}

	if t.Executed {
		custody.GetLogger(ctx).Info("funds released",
			"wallet", hex.EncodeToString(t.WalletID), "transaction", t.ID, "amount", t.Amount)
	}
	return &custody.DeliverResult{
		Data: TransactionKey(t.WalletID, t.ID),
		Tags: transactionTags(t),
	}, nil
}

func (h InitiateTransactionHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*InitiateTransactionMsg, *Wallet, custody.Address, error) {
	var msg InitiateTransactionMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	w, err := loadSigned(db, h.ctrl, msg.WalletID, signer)
	if err != nil {
		return nil, nil, nil, err
	}
	// A foreign currency could never be released.
	if err := cash.CheckCurrency(db, *msg.Amount); err != nil {
		return nil, nil, nil, errors.Field("Amount", err, "")
	}
	return &msg, w, signer, nil
}

// ApproveTransactionHandler adds an approval to a pending transaction.
type ApproveTransactionHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = ApproveTransactionHandler{}

func (h ApproveTransactionHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: approveTxCost}, nil
}

func (h ApproveTransactionHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	w, t, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	err = utils.RunAtomic(db, func(db custody.KVStore) error {
		return h.ctrl.AddApproval(db, w, t, signer)
	})
	if err != nil {
		return nil, err
	}

	if t.Executed {
		custody.GetLogger(ctx).Info("funds released",
			"wallet", hex.EncodeToString(t.WalletID), "transaction", t.ID, "amount", t.Amount)
	}
	return &custody.DeliverResult{
		Data: TransactionKey(t.WalletID, t.ID),
		Tags: transactionTags(t),
	}, nil
}

// validate checks the preconditions of an approval. A repeated approval is
// reported as such even if the transaction was released meanwhile.
func (h ApproveTransactionHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*Wallet, *Transaction, custody.Address, error) {
	var msg ApproveTransactionMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	w, err := loadSigned(db, h.ctrl, msg.WalletID, signer)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := h.ctrl.Transaction(db, msg.WalletID, msg.TransactionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if t.HasApproval(signer) {
		return nil, nil, nil, errors.Wrapf(ErrDuplicateApproval, "transaction %d", t.ID)
	}
	if t.Executed {
		return nil, nil, nil, errors.Wrap(errors.ErrState, "transaction already released")
	}
	return w, t, signer, nil
}

// TransferOwnershipHandler nominates a pending owner.
type TransferOwnershipHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = TransferOwnershipHandler{}

func (h TransferOwnershipHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: transferOwnershipCost}, nil
}

func (h TransferOwnershipHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// A previous nomination is replaced.
	w.PendingOwner = msg.NewOwner
	if err := h.ctrl.SaveWallet(db, msg.WalletID, w); err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Info("ownership transfer started",
		"wallet", hex.EncodeToString(msg.WalletID), "owner", w.Owner, "pending_owner", w.PendingOwner)
	return &custody.DeliverResult{Tags: []common.KVPair{walletTag(msg.WalletID)}}, nil
}

func (h TransferOwnershipHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*TransferOwnershipMsg, *Wallet, error) {
	var msg TransferOwnershipMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	w, err := loadOwned(db, h.ctrl, msg.WalletID, owner)
	if err != nil {
		return nil, nil, err
	}
	if w.Owner.Equals(msg.NewOwner) {
		return nil, nil, errors.Wrap(errors.ErrState, "already the owner")
	}
	return &msg, w, nil
}

// ClaimOwnershipHandler promotes the pending owner to the owner.
type ClaimOwnershipHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = ClaimOwnershipHandler{}

func (h ClaimOwnershipHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: claimOwnershipCost}, nil
}

func (h ClaimOwnershipHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	w.Owner, w.PendingOwner = w.PendingOwner, nil
	if err := h.ctrl.SaveWallet(db, msg.WalletID, w); err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Info("ownership claimed",
		"wallet", hex.EncodeToString(msg.WalletID), "owner", w.Owner)
	return &custody.DeliverResult{Tags: []common.KVPair{walletTag(msg.WalletID)}}, nil
}

func (h ClaimOwnershipHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*ClaimOwnershipMsg, *Wallet, error) {
	var msg ClaimOwnershipMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	claimer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	w, err := h.ctrl.Wallet(db, msg.WalletID)
	if err != nil {
		return nil, nil, err
	}
	if len(w.PendingOwner) == 0 || !w.PendingOwner.Equals(claimer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not pending owner")
	}
	return &msg, w, nil
}

// AddSignerHandler appends a signer to a wallet.
type AddSignerHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = AddSignerHandler{}

func (h AddSignerHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: updateSignersCost}, nil
}

func (h AddSignerHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	w.Signers = append(w.Signers, msg.Signer)
	if err := h.ctrl.SaveWallet(db, msg.WalletID, w); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Tags: []common.KVPair{walletTag(msg.WalletID)}}, nil
}

func (h AddSignerHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*AddSignerMsg, *Wallet, error) {
	var msg AddSignerMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	w, err := loadOwned(db, h.ctrl, msg.WalletID, owner)
	if err != nil {
		return nil, nil, err
	}
	if w.IsSigner(msg.Signer) {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "signer %s", msg.Signer)
	}
	if len(w.Signers) >= maxSigners {
		return nil, nil, errors.Wrapf(errors.ErrInput, "too many signers, max %d", maxSigners)
	}
	return &msg, w, nil
}

// RemoveSignerHandler removes a signer from a wallet by its position.
type RemoveSignerHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = RemoveSignerHandler{}

func (h RemoveSignerHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: updateSignersCost}, nil
}

func (h RemoveSignerHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	removed := w.Signers[msg.Index]
	signers := make([]custody.Address, 0, len(w.Signers)-1)
	signers = append(signers, w.Signers[:msg.Index]...)
	w.Signers = append(signers, w.Signers[msg.Index+1:]...)
	if err := h.ctrl.SaveWallet(db, msg.WalletID, w); err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Info("signer removed",
		"wallet", hex.EncodeToString(msg.WalletID), "signer", removed)
	return &custody.DeliverResult{Tags: []common.KVPair{walletTag(msg.WalletID)}}, nil
}

func (h RemoveSignerHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*RemoveSignerMsg, *Wallet, error) {
	var msg RemoveSignerMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	w, err := loadOwned(db, h.ctrl, msg.WalletID, owner)
	if err != nil {
		return nil, nil, err
	}
	if int(msg.Index) >= len(w.Signers) {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "signer index %d", msg.Index)
	}
	if len(w.Signers)-1 < int(w.Quorum) {
		return nil, nil, errors.Wrapf(errors.ErrState, "removal would leave %d signers for quorum %d", len(w.Signers)-1, w.Quorum)
	}
	return &msg, w, nil
}
