/*
Package httpapi serves read access to wallets and balances over HTTP. All
reads are done against the last committed state.
*/
package httpapi

import (
	"net/http"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/wallet"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// CommittedReader gives access to the committed application state.
type CommittedReader interface {
	ReadCommitted(fn func(custody.ReadOnlyKVStore) error) error
}

// Generate returns the HTTP API of an application. The application must
// expose its committed state.
func Generate(app abci.Application, logger log.Logger) (http.Handler, error) {
	reader, ok := app.(CommittedReader)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "application %T does not expose its state", app)
	}
	return New(reader, cash.NewController(cash.NewBucket()), logger), nil
}

// New returns an echo instance with all routes registered.
func New(reader CommittedReader, bank cash.Controller, logger log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	h := &handlers{
		reader:  reader,
		wallets: wallet.NewController(bank),
		bank:    bank,
	}
	e.GET("/wallets/:id", h.Wallet)
	e.GET("/wallets/:id/owner", h.Owner)
	e.GET("/wallets/:id/signers/:index", h.Signer)
	e.GET("/wallets/:id/transactions", h.Transactions)
	e.GET("/wallets/:id/transactions/:tx", h.Transaction)
	e.GET("/balances/:address", h.Balance)
	return e
}

type response struct {
	Result       interface{} `json:"result"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

func requestLogger(logger log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			logger.Debug("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"err", err)
			return err
		}
	}
}

// errorHandler renders errors as JSON. Registered errors are mapped to the
// closest HTTP status.
func errorHandler(logger log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code, msg := httpStatus(err)
		if code == http.StatusInternalServerError {
			logger.Error("http request failed", "path", c.Request().URL.Path, "err", err)
		}
		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, &response{ErrorMessage: msg})
		}
		if err != nil {
			logger.Error("cannot write error response", "err", err)
		}
	}
}

func httpStatus(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}
	switch {
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound, err.Error()
	case errors.ErrInput.Is(err), errors.ErrEmpty.Is(err):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
