package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignCodeV1 prefixes every signed message, so that a signature can never
// be replayed as another kind of message.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all signatures of a transaction and increments
// the nonce of every signer. The conditions of the signers are returned in
// the order of the signatures. A key may sign a transaction only once.
func VerifyTxSignatures(db custody.KVStore, tx SignedTx, chainID string) ([]custody.Condition, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}

	sigs := tx.GetSignatures()
	conds := make([]custody.Condition, 0, len(sigs))
	for i, sig := range sigs {
		cond, err := VerifySignature(db, sig, signBytes, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		for _, c := range conds {
			if c.Equals(cond) {
				return nil, errors.Wrapf(errors.ErrDuplicate, "signature %d: key signed twice", i)
			}
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

// VerifySignature checks a single signature of signBytes and, on success,
// increments the nonce of the signing key.
func VerifySignature(db custody.KVStore, sig *StdSignature, signBytes []byte, chainID string) (custody.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	bucket := NewBucket()
	user, err := bucket.LoadOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, errors.Wrap(err, "load signer")
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Store(db, user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes returns the digest that is signed for a transaction.

The digest is the sha512 hash of

	SignCodeV1 | len(chainID) as uint8 | chainID | nonce as big endian int64 | signBytes

A fixed size digest lets hardware wallets sign any transaction.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !custody.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	var buf bytes.Buffer
	buf.Grow(len(SignCodeV1) + 1 + len(chainID) + 8 + len(signBytes))
	buf.Write(SignCodeV1)
	buf.WriteByte(uint8(len(chainID)))
	buf.WriteString(chainID)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	buf.Write(nonce[:])
	buf.Write(signBytes)

	digest := sha512.Sum512(buf.Bytes())
	return digest[:], nil
}

// BuildSignBytesTx returns the digest to sign for tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx signs tx with the given nonce. Use NextNonce to find the nonce
// expected for a signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Sequence:  seq,
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}
