package app

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs transactions on top of the storage and queries of a
// StoreApp. Every transaction is decoded and passed to a single handler,
// usually a decorated router.
type BaseApp struct {
	*StoreApp
	decoder custody.TxDecoder
	handler custody.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application. In debug mode error
// responses carry the full error details.
func NewBaseApp(store *StoreApp, decoder custody.TxDecoder, handler custody.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decoder: decoder, handler: handler, debug: debug}
}

// CheckTx runs tx against the check state.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, ctx, err := b.prepare(raw, "check_tx")
	if err != nil {
		return custody.CheckResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return custody.CheckResponse(res, err, b.debug)
}

// DeliverTx runs tx against the state of the current block.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, ctx, err := b.prepare(raw, "deliver_tx")
	if err != nil {
		return custody.DeliverResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return custody.DeliverResponse(res, err, b.debug)
}

// prepare decodes raw and returns the block context tagged for logging.
// A panicking decoder is reported as an error.
func (b BaseApp) prepare(raw []byte, call string) (tx custody.Tx, ctx custody.Context, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		return nil, nil, err
	}
	ctx = custody.WithLogInfo(b.BlockContext(), "call", call, "path", custody.GetPath(tx))
	return tx, ctx, nil
}
