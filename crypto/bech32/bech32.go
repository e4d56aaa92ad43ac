/*
Package bech32 gives addresses a checksummed text form with a human readable
prefix, for example "tiov1...".
*/
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/custody/errors"
)

// Encode returns the bech32 text of payload under the prefix hrp.
func Encode(hrp string, payload []byte) (string, error) {
	groups, err := bech32.ConvertBits(payload, 8, 5, true)
	if err == nil {
		var enc string
		if enc, err = bech32.Encode(hrp, groups); err == nil {
			return enc, nil
		}
	}
	return "", errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
}

// Decode returns the prefix and the payload of a bech32 text. A bad
// checksum is an ErrInput.
func Decode(enc string) (hrp string, payload []byte, err error) {
	hrp, groups, err := bech32.Decode(enc)
	if err == nil {
		if payload, err = bech32.ConvertBits(groups, 5, 8, false); err == nil {
			return hrp, payload, nil
		}
	}
	return "", nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
}
