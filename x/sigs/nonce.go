package sigs

import (
	custody "github.com/iov-one/custody"
)

// NextNonce returns the nonce the next signature of signer must use. An
// address that never signed starts at zero.
func NextNonce(db custody.ReadOnlyKVStore, signer custody.Address) (int64, error) {
	u, err := NewBucket().Load(db, signer)
	if u == nil || err != nil {
		return 0, err
	}
	return u.Sequence, nil
}
