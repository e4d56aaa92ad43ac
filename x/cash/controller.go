package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller is the functionality other extensions use to move value.
type Controller interface {
	// Balance returns the balance of an address. An unknown address has a
	// zero balance.
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coin, error)

	// MoveCoins moves the given amount from src to dest.
	// If src doesn't exist, or doesn't have sufficient
	// coins, it fails.
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error

	// IssueCoins attempts to add the given amount of coins to
	// the destination address. Fails if it overflows the account.
	IssueCoins(db custody.KVStore, dest custody.Address, amount coin.Coin) error
}

// BaseController is the account store backed Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the given accounts bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance implements Controller.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coin, error) {
	var acc Account
	switch err := c.bucket.One(db, addr, &acc); {
	case err == nil:
		return acc.Balance, nil
	case errors.ErrNotFound.Is(err):
		return coin.Coin{}, nil
	default:
		return coin.Coin{}, err
	}
}

// MoveCoins implements Controller.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := CheckCurrency(db, amount); err != nil {
		return err
	}

	var sender Account
	if err := c.bucket.One(db, src, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "account %s", src)
		}
		return err
	}
	if !sender.Balance.IsGTE(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s available, %s required", sender.Balance, amount)
	}

	left, err := sender.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	sender.Balance = left
	if err := c.bucket.Put(db, src, &sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// The receiver is loaded after the sender is saved, so that moving
	// funds to the same address is a no-op.
	return c.IssueCoins(db, dest, amount)
}

// IssueCoins implements Controller. The amount may be negative, but the
// resulting balance must not.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount coin.Coin) error {
	if err := CheckCurrency(db, amount); err != nil {
		return err
	}
	balance, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := balance.Add(amount)
	if err != nil {
		return err
	}
	if err := c.bucket.Put(db, dest, &Account{Balance: total}); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// CheckCurrency ensures only the configured currency is moved. Any ticker
// is accepted if no currency is configured.
func CheckCurrency(db custody.ReadOnlyKVStore, amount coin.Coin) error {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if conf.Ticker != "" && amount.Ticker != conf.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "want %s, got %q", conf.Ticker, amount.Ticker)
	}
	return nil
}
