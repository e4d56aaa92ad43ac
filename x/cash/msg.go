package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves funds between two accounts.
type SendMsg struct {
	Source      custody.Address `json:"source"`
	Destination custody.Address `json:"destination"`
	Amount      *coin.Coin      `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

var _ custody.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var err error
	if s.Amount == nil || !s.Amount.IsPositive() {
		err = errors.Field("Amount", errors.ErrAmount, "non-positive amount")
	} else {
		err = errors.AppendField(err, "Amount", s.Amount.Validate())
	}
	err = errors.AppendField(err, "Source", s.Source.Validate())
	err = errors.AppendField(err, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return err
}

// Marshal serializes the message.
func (s *SendMsg) Marshal() ([]byte, error) {
	b := codec.NewBuffer().
		Bytes(2, s.Source).
		Bytes(3, s.Destination)
	if s.Amount != nil {
		b = b.Message(4, s.Amount)
	}
	return b.String(5, s.Memo).Result()
}

// Unmarshal is the inverse of Marshal.
func (s *SendMsg) Unmarshal(raw []byte) error {
	*s = SendMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Number {
		case 2:
			s.Source, err = f.Bytes()
		case 3:
			s.Destination, err = f.Bytes()
		case 4:
			s.Amount = &coin.Coin{}
			err = f.Message(s.Amount)
		case 5:
			s.Memo, err = f.String()
		}
		return err
	})
}
