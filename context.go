package custody

import (
	"context"
	"fmt"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block data, the chain id and the logger from the
// application down to the handlers. A value is read with GetXYZ and set
// with WithXYZ. Block data can be set only once per context chain, so that
// a decorator cannot fake it for the code it wraps.
type Context = context.Context

type ctxKey string

const (
	headerKey  ctxKey = "header"
	heightKey  ctxKey = "height"
	chainIDKey ctxKey = "chain id"
	loggerKey  ctxKey = "logger"
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID accepts 6 to 20 letters, digits, '_' and '-'.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// setOnce stores val under key and panics if key is already present.
func setOnce(ctx Context, key ctxKey, val interface{}) Context {
	if ctx.Value(key) != nil {
		panic(fmt.Sprintf("%s already set", key))
	}
	return context.WithValue(ctx, key, val)
}

// WithHeader stores the header of the block being processed.
func WithHeader(ctx Context, header abci.Header) Context {
	return setOnce(ctx, headerKey, header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

// WithHeight stores the height of the block being processed.
func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, heightKey, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// BlockTime is the time declared by the block header, if there is one.
func BlockTime(ctx Context) (time.Time, bool) {
	h, ok := GetHeader(ctx)
	if !ok || h.Time.IsZero() {
		return time.Time{}, false
	}
	return h.Time, true
}

// WithChainID stores the chain id. It panics if the id is invalid.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return setOnce(ctx, chainIDKey, chainID)
}

// GetChainID returns the chain id. Every context built by the application
// has one, so a missing id panics.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain id not set")
	}
	return id
}

// WithLogger replaces the logger. Unlike block data it may be set many
// times.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds key value pairs to every line logged through ctx.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
