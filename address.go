package custody

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/custody/crypto/bech32"
	"github.com/iov-one/custody/errors"
)

// AddressLength is the size of every address in bytes.
const AddressLength = 20

// Address identifies an account. It is the truncated sha256 digest of the
// condition that controls the account.
type Address []byte

// NewAddress returns the address of data, or nil for nil data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// String is the upper case hex form, the same one used in JSON.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with the given human readable prefix.
func (a Address) Bech32(hrp string) (string, error) {
	return bech32.Encode(hrp, a)
}

// Validate fails with ErrInput unless the address has AddressLength bytes.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address of %d bytes", len(a))
	}
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON reads a string in any form accepted by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a json string")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// addressDecoders read the payload of "<format>:<payload>" addresses.
var addressDecoders = map[string]func(string) (Address, error){
	"hex": func(s string) (Address, error) {
		return decodeHex(s)
	},
	"cond": func(s string) (Address, error) {
		c, err := ParseCondition(s)
		if err != nil {
			return nil, err
		}
		return c.Address(), nil
	},
	"bech32": func(s string) (Address, error) {
		_, payload, err := bech32.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32: %s", err)
		}
		return payload, nil
	},
}

// ParseAddress reads an address given as hex, optionally with a format
// prefix:
//
//	hex:<hex data>
//	cond:<ext>/<type>/<hex data>
//	bech32:<bech32 string>
//
// An empty string results in a nil address.
func ParseAddress(s string) (Address, error) {
	format := "hex"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, s = s[:i], s[i+1:]
	}
	if s == "" {
		return nil, nil
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	addr, err := decode(s)
	if err == nil {
		err = addr.Validate()
	}
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "hex: %s", err)
	}
	return b, nil
}
