package app

import (
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// pathDecoder treats the transaction bytes as the message path.
func pathDecoder(raw []byte) (custody.Tx, error) {
	switch string(raw) {
	case "":
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	case "boom":
		panic("cannot decode")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
}

// writeHandler stores the path of every delivered message.
type writeHandler struct{}

func (writeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return custody.NewCheck(10, "checked"), nil
}

func (writeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	path := custody.GetPath(tx)
	if err := db.Set([]byte(path), []byte("delivered")); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{
		Data: []byte(path),
		Tags: []common.KVPair{custody.Tag("path", path)},
	}, nil
}

func TestBaseApp(t *testing.T) {
	r := NewRouter()
	r.Handle("wallet/write", writeHandler{})
	r.Handle("wallet/fail", &weavetest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	})

	handler := ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)

	store := newStoreApp(t, nil)
	app := NewBaseApp(store, pathDecoder, handler, false)

	app.InitChain(abci.RequestInitChain{ChainId: "base-chain-1", AppStateBytes: []byte(`{}`)})
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, ChainID: "base-chain-1"}})

	check := app.CheckTx([]byte("wallet/write"))
	require.Equal(t, uint32(0), check.Code, check.Log)
	assert.Equal(t, int64(10), check.GasWanted)
	assert.Equal(t, "checked", check.Log)

	deliver := app.DeliverTx([]byte("wallet/write"))
	require.Equal(t, uint32(0), deliver.Code, deliver.Log)
	assert.Equal(t, []byte("wallet/write"), deliver.Data)
	assert.Equal(t, []common.KVPair{custody.Tag("path", "wallet/write")}, deliver.Tags)

	cases := map[string]struct {
		tx       string
		wantCode uint32
	}{
		"handler failure": {tx: "wallet/fail", wantCode: errors.ErrUnauthorized.ABCICode()},
		"unknown path":    {tx: "wallet/unknown", wantCode: errors.ErrNotFound.ABCICode()},
		"decoder failure": {tx: "", wantCode: errors.ErrInput.ABCICode()},
		"decoder panic":   {tx: "boom", wantCode: errors.ErrPanic.ABCICode()},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c := app.CheckTx([]byte(tc.tx))
			assert.Equal(t, tc.wantCode, c.Code)
			d := app.DeliverTx([]byte(tc.tx))
			assert.Equal(t, tc.wantCode, d.Code)
			assert.Contains(t, d.Log, "cannot deliver tx")
		})
	}

	app.EndBlock(abci.RequestEndBlock{Height: 1})
	app.Commit()

	models, err := QueryModels(app, "/raw", []byte("wallet/write"))
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("delivered"), models[0].Value)
}
