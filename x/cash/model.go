package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Account holds the balance of a single address.
type Account struct {
	Balance coin.Coin `json:"balance"`
}

var _ orm.Model = (*Account)(nil)

// Validate ensures the balance is a valid, non negative amount.
func (a *Account) Validate() error {
	if a.Balance.IsZero() && a.Balance.Ticker == "" {
		return nil
	}
	if err := a.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if !a.Balance.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Copy returns an independent copy.
func (a *Account) Copy() orm.Model {
	cpy := *a
	return &cpy
}

// Marshal serializes the account.
func (a *Account) Marshal() ([]byte, error) {
	return codec.NewBuffer().Message(1, &a.Balance).Result()
}

// Unmarshal is the inverse of Marshal.
func (a *Account) Unmarshal(raw []byte) error {
	*a = Account{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Number == 1 {
			return f.Message(&a.Balance)
		}
		return nil
	})
}

// NewBucket returns the bucket of all accounts, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{})
}

// RegisterQuery will register the accounts bucket as "/balances"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("balances", qr)
}
