/*
Package custodyd links together all the various components
to construct the custody daemon application.
*/
package custodyd

import (
	"context"
	"path/filepath"
	"strings"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/utils"
	"github.com/iov-one/custody/x/wallet"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the ABCI Info call.
const Name = "custodyd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed message leaves no trace, but the
		// signature nonce is still incremented
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a router dispatching to the cash and the wallet
// extensions. Both share the same bank.
func Router(authFn x.Authenticator, bank cash.Controller) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, bank)
	wallet.RegisterRoutes(r, authFn, bank)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/balances", "/auth", "/wallets" and "/wallettxs"
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		wallet.RegisterQuery,
	)
	return r
}

// Bank returns the value transfer primitive used by all extensions.
func Bank() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(bank cash.Controller) custody.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, bank))
}

// Initializers returns the genesis initializers of all extensions. Cash
// goes first, because wallet deposits are moved from cash balances.
func Initializers(bank cash.Controller) custody.Initializer {
	return custody.MultiInit{
		cash.Initializer{},
		&wallet.Initializer{Bank: bank},
	}
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h custody.Handler,
	tx custody.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "cannot create database instance")
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", path)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

// GenerateApp is used to create the application for the start command.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "custody.db")
	}

	bank := Bank()
	application, err := Application(Name, Stack(bank), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers(bank))
	application.WithLogger(logger)
	return application, nil
}
