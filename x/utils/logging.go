package utils

import (
	"time"

	custody "github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one log line per transaction, with the time spent in the
// rest of the chain. Failed transactions are logged as errors. Successful
// checks are logged at debug level and deliveries at info level.
type Logging struct{}

var _ custody.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := txLogger(ctx, start, err)
	switch {
	case err != nil:
		l.Error("check failed")
	case res != nil:
		l.Debug(res.Log)
	default:
		l.Debug("")
	}
	return res, err
}

func (Logging) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := txLogger(ctx, start, err)
	switch {
	case err != nil:
		l.Error("deliver failed")
	case res != nil:
		l.Info(res.Log)
	default:
		l.Info("")
	}
	return res, err
}

func txLogger(ctx custody.Context, start time.Time, err error) log.Logger {
	l := custody.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if err != nil {
		l = l.With("err", err)
	}
	return l
}
