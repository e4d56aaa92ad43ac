package utils

import (
	custody "github.com/iov-one/custody"
)

// writeHandler writes the key, value pair and returns the error (may be nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ custody.Handler = writeHandler{}

func (h writeHandler) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &custody.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &custody.DeliverResult{}, nil
}

// writeDecorator writes the key, value pair.
// either before or after calling the handlers
type writeDecorator struct {
	key   []byte
	value []byte
	after bool
}

var _ custody.Decorator = writeDecorator{}

func (d writeDecorator) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	if !d.after {
		_ = store.Set(d.key, d.value)
	}
	res, err := next.Check(ctx, store, tx)
	if d.after {
		_ = store.Set(d.key, d.value)
	}
	return res, err
}

func (d writeDecorator) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	if !d.after {
		_ = store.Set(d.key, d.value)
	}
	res, err := next.Deliver(ctx, store, tx)
	if d.after {
		_ = store.Set(d.key, d.value)
	}
	return res, err
}
