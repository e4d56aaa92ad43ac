package custodyd

import (
	"encoding/json"
	"fmt"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/wallet"
)

// DefaultTicker is the currency used when none is given.
const DefaultTicker = "IOV"

type genesisCurrency struct {
	Ticker string `json:"ticker"`
}

type genesisOptions struct {
	Currency genesisCurrency        `json:"currency"`
	Cash     []cash.GenesisAccount  `json:"cash"`
	Wallet   []wallet.GenesisWallet `json:"wallet"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// The first argument is the currency ticker, the second the hex address of
// the funded account. Without an address a new key is generated and printed.
// The optional third argument sets the initial balance, for example "500.5",
// in the given currency.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := DefaultTicker
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr custody.Address
	if len(args) > 1 {
		var err error
		addr, err = custody.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		bz, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = bz
		fmt.Println(keys)
	}

	balance := coin.NewCoin(123456789, 0, ticker)
	if len(args) > 2 {
		var err error
		balance, err = coin.ParseHumanFormat(args[2] + " " + ticker)
		if err != nil {
			return nil, err
		}
		if !balance.IsPositive() {
			return nil, errors.Wrapf(errors.ErrAmount, "initial balance %s", balance)
		}
	}

	opts := genesisOptions{
		Currency: genesisCurrency{Ticker: ticker},
		Cash: []cash.GenesisAccount{
			{Address: addr, Balance: balance},
		},
		Wallet: []wallet.GenesisWallet{},
	}
	return json.MarshalIndent(opts, "", "  ")
}

type output struct {
	Address custody.Address   `json:"address"`
	Pubkey  *crypto.PublicKey `json:"pub_key"`
	Seed    []byte            `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (custody.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Address: addr, Pubkey: pubKey, Seed: privKey.Ed25519}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "marshal keys")
	}
	return addr, string(keys), nil
}
