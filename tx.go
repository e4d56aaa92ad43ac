package custody

import (
	"reflect"

	"github.com/iov-one/custody/errors"
)

// Marshaller serializes a value to its binary form. Marshal may validate
// the value first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent values round trip through their binary form. Unmarshal needs a
// pointer receiver, so a plain value is often only a Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is the action a transaction requests, for example approving a
// pending transfer of a wallet.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example
	// "wallet/approve". Only [0-9A-Za-z_\-/] are allowed.
	Path() string

	// Validate checks the content of the message without looking at the
	// state.
	Validate() error
}

// Tx is what a client submits: a single message together with whatever
// the decorators need to authenticate it, such as signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder reads a Tx from the bytes submitted by a client.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath is the path of the message carried by tx, or "(missing)" if it
// cannot be read. It is meant for logs.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dst and validates it. dst must be a
// pointer to the concrete message type:
//
//	var msg wallet.ApproveMsg
//	if err := custody.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, dst interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "read message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	to := reflect.ValueOf(dst)
	if to.Kind() != reflect.Ptr || to.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "cannot load message into %T", dst)
	}
	from := reflect.ValueOf(msg)
	if from.Type() != to.Type() {
		return errors.Wrapf(errors.ErrType, "expected %T, got %T", dst, msg)
	}
	to.Elem().Set(from.Elem())

	return errors.Wrap(msg.Validate(), "invalid message")
}
