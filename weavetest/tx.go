package weavetest

import (
	"crypto/rand"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Tx carries a single message. Err, when set, is returned by GetMsg.
type Tx struct {
	Msg custody.Msg
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal returns the serialized message.
func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no message")
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "test transaction cannot be decoded")
}

// Msg is routed by RoutePath. Err, when set, is returned by every method
// except Path.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}

// SequenceID returns the key a bucket sequence produces for n.
func SequenceID(n uint64) []byte {
	return orm.EncodeSequence(n)
}

// RandomAddr returns a random, valid address.
func RandomAddr(t testing.TB) custody.Address {
	t.Helper()
	raw := make([]byte, custody.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot read random bytes: %s", err)
	}
	return custody.Address(raw)
}
