package custody

import (
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is returned by a handler that accepts a transaction into the
// mempool. Failures are reported with an error instead.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum units of work the transaction may
	// perform.
	GasAllocated int64
}

// NewCheck returns a check result allocating gas.
func NewCheck(gas int64, log string) *CheckResult {
	return &CheckResult{GasAllocated: gas, Log: log}
}

// DeliverResult is returned by a handler that executed a transaction.
// Failures are reported with an error instead.
type DeliverResult struct {
	// Data is a machine readable return value, like the id of a created
	// entity.
	Data []byte
	Log  string
	// Tags index the transaction, so that clients can search for it.
	Tags []common.KVPair
}

// CheckResponse turns the outcome of a check into an ABCI response. The
// error code is preserved. Internal error details are revealed only in
// debug mode.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{Code: code, Log: "cannot check tx: " + log}
	}
	if res == nil {
		return abci.ResponseCheckTx{}
	}
	return abci.ResponseCheckTx{Data: res.Data, Log: res.Log, GasWanted: res.GasAllocated}
}

// DeliverResponse is CheckResponse for delivered transactions.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: "cannot deliver tx: " + log}
	}
	if res == nil {
		return abci.ResponseDeliverTx{}
	}
	return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log, Tags: res.Tags}
}

// Tag builds an indexable key value pair from strings.
func Tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
