package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

const (
	optKey         = "cash"
	currencyOptKey = "currency"
)

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address custody.Address `json:"address"`
	Balance coin.Coin       `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse the currency configuration and initial account
// balances from genesis and save them to the database.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var conf Configuration
	if err := opts.ReadOptions(currencyOptKey, &conf); err != nil {
		return err
	}
	if conf.Ticker != "" {
		if err := SaveConfiguration(kv, &conf); err != nil {
			return errors.Wrap(err, "currency")
		}
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	controller := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if !acct.Balance.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "account %d: non-positive balance", i)
		}
		if err := controller.IssueCoins(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
