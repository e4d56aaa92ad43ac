package custodyd

import (
	"reflect"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/wallet"
)

// Tx is the transaction format of the custody daemon. It carries exactly
// one message and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        custody.Msg
}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// Field numbers of the signatures and of every supported message. Each
// message type owns a field, so a serialized transaction names the type of
// the message it carries.
const (
	fieldSignatures = 1

	fieldSendMsg                = 51
	fieldCreateWalletMsg        = 61
	fieldInitiateTransactionMsg = 62
	fieldApproveTransactionMsg  = 63
	fieldTransferOwnershipMsg   = 64
	fieldClaimOwnershipMsg      = 65
	fieldAddSignerMsg           = 66
	fieldRemoveSignerMsg        = 67
)

// msgTypes maps a field number to the message type it holds.
var msgTypes = map[int]reflect.Type{
	fieldSendMsg:                reflect.TypeOf(cash.SendMsg{}),
	fieldCreateWalletMsg:        reflect.TypeOf(wallet.CreateWalletMsg{}),
	fieldInitiateTransactionMsg: reflect.TypeOf(wallet.InitiateTransactionMsg{}),
	fieldApproveTransactionMsg:  reflect.TypeOf(wallet.ApproveTransactionMsg{}),
	fieldTransferOwnershipMsg:   reflect.TypeOf(wallet.TransferOwnershipMsg{}),
	fieldClaimOwnershipMsg:      reflect.TypeOf(wallet.ClaimOwnershipMsg{}),
	fieldAddSignerMsg:           reflect.TypeOf(wallet.AddSignerMsg{}),
	fieldRemoveSignerMsg:        reflect.TypeOf(wallet.RemoveSignerMsg{}),
}

// msgField returns the field number used to serialize given message.
func msgField(msg custody.Msg) (int, error) {
	t := reflect.TypeOf(msg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for field, mt := range msgTypes {
		if mt == t {
			return field, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "empty transaction")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. The signatures are not part of
// the signed content.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return tx.marshal(false)
}

// Marshal serializes the transaction together with its signatures.
func (tx *Tx) Marshal() ([]byte, error) {
	return tx.marshal(true)
}

func (tx *Tx) marshal(withSignatures bool) ([]byte, error) {
	b := codec.NewBuffer()
	if withSignatures {
		for _, s := range tx.Signatures {
			if s == nil {
				return nil, errors.Wrap(errors.ErrEmpty, "nil signature")
			}
			b = b.Message(fieldSignatures, s)
		}
	}
	if tx.Msg != nil {
		field, err := msgField(tx.Msg)
		if err != nil {
			return nil, err
		}
		b = b.Message(field, tx.Msg)
	}
	return b.Result()
}

// Unmarshal is the inverse of Marshal.
func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Number == fieldSignatures {
			var sig sigs.StdSignature
			if err := f.Message(&sig); err != nil {
				return err
			}
			tx.Signatures = append(tx.Signatures, &sig)
			return nil
		}

		mt, ok := msgTypes[f.Number]
		if !ok {
			return nil
		}
		if tx.Msg != nil {
			return errors.Wrap(errors.ErrInput, "transaction carries more than one message")
		}
		msg := reflect.New(mt).Interface().(custody.Msg)
		if err := f.Message(msg); err != nil {
			return err
		}
		tx.Msg = msg
		return nil
	})
}
