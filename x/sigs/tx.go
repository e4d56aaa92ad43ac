package sigs

import (
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	// Equivalent to x.MustMarshal(tx.GetMsg()) if Msg has a deterministic
	// serialization.
	GetSignBytes() ([]byte, error)

	// Signatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of the transaction sign bytes together with
// the public key that produced it and the nonce it was created for.
type StdSignature struct {
	Sequence  int64             `json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// Marshal serializes the signature.
func (s *StdSignature) Marshal() ([]byte, error) {
	b := codec.NewBuffer().Int64(1, s.Sequence)
	if s.Pubkey != nil {
		b = b.Message(2, s.Pubkey)
	}
	if s.Signature != nil {
		b = b.Message(4, s.Signature)
	}
	return b.Result()
}

// Unmarshal is the inverse of Marshal.
func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	return codec.Decode(raw, func(f codec.Field) error {
		switch f.Number {
		case 1:
			v, err := f.Int64()
			s.Sequence = v
			return err
		case 2:
			s.Pubkey = &crypto.PublicKey{}
			return f.Message(s.Pubkey)
		case 4:
			s.Signature = &crypto.Signature{}
			return f.Message(s.Signature)
		}
		return nil
	})
}
