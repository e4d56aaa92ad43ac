package crypto

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// PublicKey is the serializable public part of a key pair.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	if len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a custody condition
func (p *PublicKey) Condition() custody.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return custody.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the condition represented by this key.
func (p *PublicKey) Address() custody.Address {
	return p.Condition().Address()
}

// Validate ensures the key is of the expected size.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

// Marshal serializes the key.
func (p *PublicKey) Marshal() ([]byte, error) {
	return codec.NewBuffer().Bytes(1, p.Ed25519).Result()
}

// Unmarshal is the inverse of Marshal.
func (p *PublicKey) Unmarshal(raw []byte) error {
	*p = PublicKey{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Number == 1 {
			p.Ed25519, err = f.Bytes()
		}
		return err
	})
}

// Signature is a serializable ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// Marshal serializes the signature.
func (s *Signature) Marshal() ([]byte, error) {
	return codec.NewBuffer().Bytes(1, s.Ed25519).Result()
}

// Unmarshal is the inverse of Marshal.
func (s *Signature) Unmarshal(raw []byte) error {
	*s = Signature{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Number == 1 {
			s.Ed25519, err = f.Bytes()
		}
		return err
	})
}

// PrivateKey holds the secret part of a key pair.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	sig := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: sig}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Marshal serializes the private key.
func (p *PrivateKey) Marshal() ([]byte, error) {
	return codec.NewBuffer().Bytes(1, p.Ed25519).Result()
}

// Unmarshal is the inverse of Marshal.
func (p *PrivateKey) Unmarshal(raw []byte) error {
	*p = PrivateKey{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Number == 1 {
			p.Ed25519, err = f.Bytes()
		}
		return err
	})
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
