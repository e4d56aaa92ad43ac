package sigs

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue keeps nonces within the integer range that javascript
// clients represent exactly.
const maxSequenceValue = (1 << 53) - 1

// UserData is the replay protection state of a single key. Sequence is the
// nonce the next signature of that key must carry.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	case u.Sequence > maxSequenceValue:
		return errors.Field("Sequence", errors.ErrOverflow, "too big")
	case u.Pubkey == nil:
		return errors.Field("Pubkey", errors.ErrEmpty, "required")
	}
	return nil
}

// Copy makes a new UserData with the same data.
func (u *UserData) Copy() orm.Model {
	cpy := &UserData{Sequence: u.Sequence}
	if u.Pubkey != nil {
		cpy.Pubkey = &crypto.PublicKey{Ed25519: append([]byte(nil), u.Pubkey.Ed25519...)}
	}
	return cpy
}

// Marshal serializes the user data.
func (u *UserData) Marshal() ([]byte, error) {
	b := codec.NewBuffer()
	if u.Pubkey != nil {
		b = b.Message(2, u.Pubkey)
	}
	return b.Int64(3, u.Sequence).Result()
}

// Unmarshal is the inverse of Marshal.
func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	return codec.Decode(raw, func(f codec.Field) error {
		switch f.Number {
		case 2:
			u.Pubkey = &crypto.PublicKey{}
			return f.Message(u.Pubkey)
		case 3:
			v, err := f.Int64()
			u.Sequence = v
			return err
		}
		return nil
	})
}

// CheckAndIncrementSequence consumes the expected nonce. Any other value
// fails with ErrInvalidSequence and leaves the state untouched.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// Bucket stores the nonce state of every signer, keyed by address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// Load returns the state of addr, or nil if that address never signed.
func (b Bucket) Load(db custody.ReadOnlyKVStore, addr custody.Address) (*UserData, error) {
	var u UserData
	switch err := b.One(db, addr, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// LoadOrCreate returns the state of pubkey. A key that never signed starts
// at nonce zero.
func (b Bucket) LoadOrCreate(db custody.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	u, err := b.Load(db, pubkey.Address())
	if err != nil || u != nil {
		return u, err
	}
	return &UserData{Pubkey: pubkey}, nil
}

// Store saves u under the address of its public key.
func (b Bucket) Store(db custody.KVStore, u *UserData) error {
	if u.Pubkey == nil {
		return errors.Field("Pubkey", errors.ErrEmpty, "required")
	}
	return b.Put(db, u.Pubkey.Address(), u)
}
