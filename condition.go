package custody

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/iov-one/custody/errors"
)

// isConditionName matches the extension and type sections of a condition.
var isConditionName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{3,8}$`).Match

// Condition names who may authorize an action, in the form
// "<extension>/<type>/<data>". A signature yields the condition of its
// public key, the wallet extension yields one per wallet for its fund
// account.
type Condition []byte

// NewCondition joins the sections of a condition. The result is not
// validated.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into its sections. The data is returned as is
// and may contain any byte, including '/'.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	parts := bytes.SplitN(c, []byte{'/'}, 3)
	if len(parts) != 3 || !isConditionName(parts[0]) || !isConditionName(parts[1]) || len(parts[2]) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(parts[0]), string(parts[1]), parts[2], nil
}

// Validate fails with ErrInput if the condition is malformed.
func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address is the account controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String prints the data section in hex. ParseCondition reads it back.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// ParseCondition reads the representation produced by String.
func ParseCondition(s string) (Condition, error) {
	i := bytes.LastIndexByte([]byte(s), '/')
	if i < 0 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q", s)
	}
	data, err := decodeHex(s[i+1:])
	if err != nil {
		return nil, err
	}
	c := append(Condition(s[:i+1]), data...)
	return c, c.Validate()
}
