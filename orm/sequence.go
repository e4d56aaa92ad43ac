package orm

import (
	"encoding/binary"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// sequenceSize is the length of an encoded sequence value.
const sequenceSize = 8

// Sequence is a persistent counter, stored under "_s.<bucket>:<name>". It
// hands out 1, 2, 3 and so on. Encoded values sort like the numbers, so
// they make good primary keys.
type Sequence struct {
	key []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextInt increments the counter and returns the new value.
func (s *Sequence) NextInt(db custody.KVStore) (uint64, error) {
	n, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return n, nil
}

// NextVal is NextInt returning the encoded value.
func (s *Sequence) NextVal(db custody.KVStore) ([]byte, error) {
	n, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// Latest returns the last value handed out, or zero for a new counter.
func (s *Sequence) Latest(db custody.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw)
}

// EncodeSequence writes n as 8 bytes big endian.
func EncodeSequence(n uint64) []byte {
	var raw [sequenceSize]byte
	binary.BigEndian.PutUint64(raw[:], n)
	return raw[:]
}

// DecodeSequence is the inverse of EncodeSequence. Nil decodes as zero.
func DecodeSequence(raw []byte) (uint64, error) {
	if raw == nil {
		return 0, nil
	}
	if err := ValidateSequence(raw); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

// ValidateSequence checks that raw is an encoded sequence value, for
// example a wallet id taken from a message.
func ValidateSequence(raw []byte) error {
	switch len(raw) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence")
	case sequenceSize:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "sequence of %d bytes", len(raw))
	}
}
