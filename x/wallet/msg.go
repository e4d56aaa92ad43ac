package wallet

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	pathCreateWalletMsg        = "wallet/create"
	pathInitiateTransactionMsg = "wallet/initiate"
	pathApproveTransactionMsg  = "wallet/approve"
	pathTransferOwnershipMsg   = "wallet/transfer_ownership"
	pathClaimOwnershipMsg      = "wallet/claim_ownership"
	pathAddSignerMsg           = "wallet/add_signer"
	pathRemoveSignerMsg        = "wallet/remove_signer"
)

var (
	_ custody.Msg = (*CreateWalletMsg)(nil)
	_ custody.Msg = (*InitiateTransactionMsg)(nil)
	_ custody.Msg = (*ApproveTransactionMsg)(nil)
	_ custody.Msg = (*TransferOwnershipMsg)(nil)
	_ custody.Msg = (*ClaimOwnershipMsg)(nil)
	_ custody.Msg = (*AddSignerMsg)(nil)
	_ custody.Msg = (*RemoveSignerMsg)(nil)
)

// CreateWalletMsg creates a new wallet owned by the main signer of the
// transaction. The deposit, if any, is moved from the owner to the wallet
// account together with the creation.
type CreateWalletMsg struct {
	Signers []custody.Address `json:"signers"`
	Quorum  uint32            `json:"quorum"`
	Deposit *coin.Coin        `json:"deposit,omitempty"`
}

func (CreateWalletMsg) Path() string {
	return pathCreateWalletMsg
}

func (m *CreateWalletMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Signers", validateSigners(m.Signers))
	err = errors.AppendField(err, "Quorum", validateQuorum(m.Quorum, len(m.Signers)))
	if m.Deposit != nil {
		if !m.Deposit.IsPositive() {
			err = errors.Append(err, errors.Field("Deposit", errors.ErrAmount, "non-positive deposit"))
		} else {
			err = errors.AppendField(err, "Deposit", m.Deposit.Validate())
		}
	}
	return err
}

func (m *CreateWalletMsg) Marshal() ([]byte, error) {
	b := codec.NewBuffer().
		RepeatedBytes(1, addrsToBytes(m.Signers)).
		Uint32(2, m.Quorum)
	if m.Deposit != nil {
		b = b.Message(3, m.Deposit)
	}
	return b.Result()
}

func (m *CreateWalletMsg) Unmarshal(raw []byte) error {
	*m = CreateWalletMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			var s []byte
			if s, err = f.Bytes(); err == nil {
				m.Signers = append(m.Signers, s)
			}
		case 2:
			m.Quorum, err = f.Uint32()
		case 3:
			m.Deposit = &coin.Coin{}
			err = f.Message(m.Deposit)
		}
		return err
	})
}

// InitiateTransactionMsg proposes to send funds out of a wallet. The
// proposing signer approves it implicitly.
type InitiateTransactionMsg struct {
	WalletID []byte          `json:"wallet_id"`
	Amount   *coin.Coin      `json:"amount"`
	Receiver custody.Address `json:"receiver"`
}

func (InitiateTransactionMsg) Path() string {
	return pathInitiateTransactionMsg
}

func (m *InitiateTransactionMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WalletID", orm.ValidateSequence(m.WalletID))
	if m.Amount == nil || !m.Amount.IsPositive() {
		err = errors.Append(err, errors.Field("Amount", errors.ErrAmount, "non-positive amount"))
	} else {
		err = errors.AppendField(err, "Amount", m.Amount.Validate())
	}
	err = errors.AppendField(err, "Receiver", m.Receiver.Validate())
	return err
}

func (m *InitiateTransactionMsg) Marshal() ([]byte, error) {
	b := codec.NewBuffer().Bytes(1, m.WalletID)
	if m.Amount != nil {
		b = b.Message(2, m.Amount)
	}
	return b.Bytes(3, m.Receiver).Result()
}

func (m *InitiateTransactionMsg) Unmarshal(raw []byte) error {
	*m = InitiateTransactionMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			m.WalletID, err = f.Bytes()
		case 2:
			m.Amount = &coin.Coin{}
			err = f.Message(m.Amount)
		case 3:
			m.Receiver, err = f.Bytes()
		}
		return err
	})
}

// ApproveTransactionMsg adds the approval of the main signer to a pending
// transaction.
type ApproveTransactionMsg struct {
	WalletID      []byte `json:"wallet_id"`
	TransactionID uint64 `json:"transaction_id"`
}

func (ApproveTransactionMsg) Path() string {
	return pathApproveTransactionMsg
}

// Validate checks the wallet ID only. Transaction IDs start at 1, an ID
// that is not in the ledger is reported as not found by the handler.
func (m *ApproveTransactionMsg) Validate() error {
	return errors.Field("WalletID", orm.ValidateSequence(m.WalletID), "")
}

func (m *ApproveTransactionMsg) Marshal() ([]byte, error) {
	return codec.NewBuffer().
		Bytes(1, m.WalletID).
		Uint64(2, m.TransactionID).
		Result()
}

func (m *ApproveTransactionMsg) Unmarshal(raw []byte) error {
	*m = ApproveTransactionMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			m.WalletID, err = f.Bytes()
		case 2:
			m.TransactionID, err = f.Uint64()
		}
		return err
	})
}

// TransferOwnershipMsg nominates a pending owner. The current owner keeps
// all rights until the nominated account claims the ownership.
type TransferOwnershipMsg struct {
	WalletID []byte          `json:"wallet_id"`
	NewOwner custody.Address `json:"new_owner"`
}

func (TransferOwnershipMsg) Path() string {
	return pathTransferOwnershipMsg
}

func (m *TransferOwnershipMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WalletID", orm.ValidateSequence(m.WalletID))
	err = errors.AppendField(err, "NewOwner", m.NewOwner.Validate())
	return err
}

func (m *TransferOwnershipMsg) Marshal() ([]byte, error) {
	return codec.NewBuffer().
		Bytes(1, m.WalletID).
		Bytes(2, m.NewOwner).
		Result()
}

func (m *TransferOwnershipMsg) Unmarshal(raw []byte) error {
	*m = TransferOwnershipMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			m.WalletID, err = f.Bytes()
		case 2:
			m.NewOwner, err = f.Bytes()
		}
		return err
	})
}

// ClaimOwnershipMsg makes the pending owner the owner of a wallet.
type ClaimOwnershipMsg struct {
	WalletID []byte `json:"wallet_id"`
}

func (ClaimOwnershipMsg) Path() string {
	return pathClaimOwnershipMsg
}

func (m *ClaimOwnershipMsg) Validate() error {
	return errors.AppendField(nil, "WalletID", orm.ValidateSequence(m.WalletID))
}

func (m *ClaimOwnershipMsg) Marshal() ([]byte, error) {
	return codec.NewBuffer().Bytes(1, m.WalletID).Result()
}

func (m *ClaimOwnershipMsg) Unmarshal(raw []byte) error {
	*m = ClaimOwnershipMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Number == 1 {
			m.WalletID, err = f.Bytes()
		}
		return err
	})
}

// AddSignerMsg appends a signer to the signer list of a wallet.
type AddSignerMsg struct {
	WalletID []byte          `json:"wallet_id"`
	Signer   custody.Address `json:"signer"`
}

func (AddSignerMsg) Path() string {
	return pathAddSignerMsg
}

func (m *AddSignerMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WalletID", orm.ValidateSequence(m.WalletID))
	err = errors.AppendField(err, "Signer", m.Signer.Validate())
	return err
}

func (m *AddSignerMsg) Marshal() ([]byte, error) {
	return codec.NewBuffer().
		Bytes(1, m.WalletID).
		Bytes(2, m.Signer).
		Result()
}

func (m *AddSignerMsg) Unmarshal(raw []byte) error {
	*m = AddSignerMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			m.WalletID, err = f.Bytes()
		case 2:
			m.Signer, err = f.Bytes()
		}
		return err
	})
}

// RemoveSignerMsg removes the signer at the given zero based position.
type RemoveSignerMsg struct {
	WalletID []byte `json:"wallet_id"`
	Index    uint32 `json:"index"`
}

func (RemoveSignerMsg) Path() string {
	return pathRemoveSignerMsg
}

func (m *RemoveSignerMsg) Validate() error {
	return errors.AppendField(nil, "WalletID", orm.ValidateSequence(m.WalletID))
}

func (m *RemoveSignerMsg) Marshal() ([]byte, error) {
	return codec.NewBuffer().
		Bytes(1, m.WalletID).
		Uint32(2, m.Index).
		Result()
}

func (m *RemoveSignerMsg) Unmarshal(raw []byte) error {
	*m = RemoveSignerMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 1:
			m.WalletID, err = f.Bytes()
		case 2:
			m.Index, err = f.Uint32()
		}
		return err
	})
}
