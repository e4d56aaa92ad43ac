package utils

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery turns a panic anywhere further down the chain into an ErrPanic
// error, so that a single broken transaction cannot halt the node. Put it
// first in the chain.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (res *custody.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (res *custody.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
