package app

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicHandler panics on every call.
type panicHandler struct{}

func (panicHandler) Check(custody.Context, custody.KVStore, custody.Tx) (*custody.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(custody.Context, custody.KVStore, custody.Tx) (*custody.DeliverResult, error) {
	panic("deliver")
}

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	var missing *weavetest.Decorator
	stack := ChainDecorators(
		c1,
		nil,
		utils.NewLogging(),
		missing,
	).Chain(
		utils.NewRecovery(),
		c2,
	).WithHandler(h)

	ctx := context.Background()

	_, err := stack.Check(ctx, nil, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, 1, c1.CheckCallCount())
	assert.Equal(t, 1, c1.DeliverCallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainStopsOnError(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{DeliverErr: errors.ErrUnauthorized}
	h := &weavetest.Handler{}

	stack := ChainDecorators(c1, c2).WithHandler(h)
	ctx := context.Background()

	_, err := stack.Check(ctx, nil, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	// deliver never reached the handler
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 0, h.DeliverCallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	inner := &weavetest.Decorator{}
	stack := ChainDecorators(
		utils.NewRecovery(),
		inner,
	).WithHandler(panicHandler{})

	ctx := context.Background()

	_, err := stack.Check(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 2, inner.CallCount())
}
