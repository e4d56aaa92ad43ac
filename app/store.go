package app

import (
	"encoding/json"
	"fmt"
	"strings"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the storage half of an ABCI application: genesis, blocks,
// commits and queries. BaseApp embeds it and adds transactions.
//
// Info, InitChain, BeginBlock, EndBlock and Commit have no way to report an
// error to tendermint. They panic instead, which stops the node.
type StoreApp struct {
	name    string
	logger  log.Logger
	store   *CommitStore
	init    custody.Initializer
	queries custody.QueryRouter

	// chainID is empty until the genesis was loaded.
	chainID string
	// base holds the logger and the chain id, block extends it with the
	// header of the block being processed.
	base  custody.Context
	block custody.Context
}

// NewStoreApp opens the latest version of kv. A chain that was already
// initialized gets its chain id back from the store. It panics if the
// store cannot be loaded.
func NewStoreApp(name string, kv custody.CommitKVStore, queries custody.QueryRouter, ctx custody.Context) *StoreApp {
	cs, err := NewCommitStore(kv)
	mustNot(err)
	chainID, err := loadChainID(cs.DeliverStore())
	mustNot(err)
	info, err := cs.CommitInfo()
	mustNot(err)

	s := &StoreApp{name: name, store: cs, queries: queries, base: ctx}
	s.WithLogger(log.NewNopLogger())
	if chainID != "" {
		s.setChainID(chainID)
	}
	s.block = custody.WithHeight(s.base, info.Version)
	return s
}

func mustNot(err error) {
	if err != nil {
		panic(err)
	}
}

// WithInit sets the initializer run by InitChain.
func (s *StoreApp) WithInit(init custody.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithLogger sets the logger of the application and of every context it
// creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.base = custody.WithLogger(s.base, logger)
	return s
}

// GetChainID returns the chain id, or an empty string before genesis.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.base = custody.WithChainID(s.base, chainID)
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() custody.Context {
	return s.block
}

// ReadCommitted gives fn a read only view of the last committed state. It
// is safe to call concurrently with the ABCI methods.
func (s *StoreApp) ReadCommitted(fn func(custody.ReadOnlyKVStore) error) error {
	return s.store.ReadCommitted(fn)
}

// DeliverStore returns the state modified by the transactions of the
// current block.
func (s *StoreApp) DeliverStore() custody.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the state used to validate mempool transactions.
func (s *StoreApp) CheckStore() custody.CacheableKVStore {
	return s.store.CheckStore()
}

// initChain stores the chain id and runs the initializer on the app state.
// It may succeed only once in the lifetime of a chain.
func (s *StoreApp) initChain(chainID string, appState []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no app_state in genesis, run the init command first")
	}
	var opts custody.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if s.init == nil {
		return nil
	}
	return s.init.FromGenesis(opts, s.DeliverStore())
}

// Info returns the name and version of the application, together with the
// last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	mustNot(err)
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          custody.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain loads the genesis app state.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	mustNot(s.initChain(req.ChainId, req.AppStateBytes))
	return abci.ResponseInitChain{}
}

// BeginBlock makes the block header available to the transactions.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := custody.WithHeader(s.base, req.Header)
	s.block = custody.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the state of the block.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	mustNot(err)
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

/*
Query reads the last committed state.

The path selects a registered query handler, for example "/wallets". A
"?prefix" suffix turns the key lookup into a prefix search. Only the latest
height can be queried, a zero height means the latest.

Key and Value of the response are both ResultSet encoded, holding the keys
and the values of the matching entries in the same order.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	h := s.queries.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound,
			"unknown query path %q, use one of %s", req.Path, strings.Join(s.queries.Paths(), ", ")))
	}

	var (
		height int64
		found  []custody.Model
	)
	err := s.store.ReadCommitted(func(db custody.ReadOnlyKVStore) error {
		info, err := s.store.committed.LatestVersion()
		if err != nil {
			return err
		}
		if req.Height != 0 && req.Height != info.Version {
			return errors.Wrapf(errors.ErrInput, "only the latest height %d can be queried", info.Version)
		}
		height = info.Version
		found, err = h.Query(db, mod, req.Data)
		return err
	})
	if err != nil {
		return queryError(err)
	}

	keys, err := ResultsFromKeys(found).Marshal()
	if err != nil {
		return queryError(err)
	}
	values, err := ResultsFromValues(found).Marshal()
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{Height: height, Key: keys, Value: values}
}

// splitPath separates the query modifier following "?" from the path.
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
