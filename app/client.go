package app

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Querier is the query side of an ABCI application.
type Querier interface {
	Query(abci.RequestQuery) abci.ResponseQuery
}

// QueryModels runs a query against the application and returns the result
// sets joined back into models. Path may carry a "?prefix" modifier. A
// failed query is returned as the error registered for its code.
func QueryModels(q Querier, path string, data []byte) ([]custody.Model, error) {
	res := q.Query(abci.RequestQuery{
		Path: path,
		Data: data,
	})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}

	var keys, values ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&keys, &values)
}

// QueryOne runs a key query and unmarshals the first result into dest. It
// returns false if nothing was found.
func QueryOne(q Querier, path string, key []byte, dest custody.Persistent) (bool, error) {
	models, err := QueryModels(q, path, key)
	if err != nil {
		return false, err
	}
	if len(models) == 0 {
		return false, nil
	}
	if err := dest.Unmarshal(models[0].Value); err != nil {
		return false, errors.Wrap(err, "unmarshal result")
	}
	return true, nil
}
