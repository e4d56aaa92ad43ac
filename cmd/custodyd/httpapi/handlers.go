package httpapi

import (
	"net/http"
	"strconv"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/wallet"
	"github.com/labstack/echo/v4"
)

type handlers struct {
	reader  CommittedReader
	wallets wallet.Controller
	bank    cash.Controller
}

type ownerView struct {
	Owner        custody.Address `json:"owner"`
	PendingOwner custody.Address `json:"pending_owner,omitempty"`
}

type signerView struct {
	Index  int             `json:"index"`
	Signer custody.Address `json:"signer"`
}

type balanceView struct {
	Address custody.Address `json:"address"`
	Balance coin.Coin       `json:"balance"`
}

func (h *handlers) Wallet(c echo.Context) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}
	var w *wallet.Wallet
	err = h.reader.ReadCommitted(func(db custody.ReadOnlyKVStore) error {
		w, err = h.wallets.Wallet(db, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &response{Result: w})
}

func (h *handlers) Owner(c echo.Context) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}
	var view ownerView
	err = h.reader.ReadCommitted(func(db custody.ReadOnlyKVStore) error {
		owner, err := h.wallets.Owner(db, id)
		if err != nil {
			return err
		}
		w, err := h.wallets.Wallet(db, id)
		if err != nil {
			return err
		}
		view = ownerView{Owner: owner, PendingOwner: w.PendingOwner}
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &response{Result: view})
}

func (h *handlers) Signer(c echo.Context) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return errors.Wrap(errors.ErrInput, "signer index")
	}
	var view signerView
	err = h.reader.ReadCommitted(func(db custody.ReadOnlyKVStore) error {
		signer, err := h.wallets.Signer(db, id, index)
		view = signerView{Index: index, Signer: signer}
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &response{Result: view})
}

func (h *handlers) Transactions(c echo.Context) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}
	var txs []*wallet.Transaction
	err = h.reader.ReadCommitted(func(db custody.ReadOnlyKVStore) error {
		txs, err = h.wallets.Transactions(db, id)
		return err
	})
	if err != nil {
		return err
	}
	if txs == nil {
		txs = []*wallet.Transaction{}
	}
	return c.JSON(http.StatusOK, &response{Result: txs})
}

func (h *handlers) Transaction(c echo.Context) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}
	txID, err := strconv.ParseUint(c.Param("tx"), 10, 64)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "transaction id")
	}
	var t *wallet.Transaction
	err = h.reader.ReadCommitted(func(db custody.ReadOnlyKVStore) error {
		t, err = h.wallets.Transaction(db, id, txID)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &response{Result: t})
}

func (h *handlers) Balance(c echo.Context) error {
	addr, err := custody.ParseAddress(c.Param("address"))
	if err != nil {
		return err
	}
	if err := addr.Validate(); err != nil {
		return err
	}
	view := balanceView{Address: addr}
	err = h.reader.ReadCommitted(func(db custody.ReadOnlyKVStore) error {
		view.Balance, err = h.bank.Balance(db, addr)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &response{Result: view})
}

// walletID reads the numeric wallet ID from the path.
func walletID(c echo.Context) ([]byte, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return nil, errors.Wrap(errors.ErrInput, "wallet id must be a positive number")
	}
	return orm.EncodeSequence(n), nil
}
