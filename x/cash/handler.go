package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes binds the cash messages to their handlers.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// SendHandler moves coins between two accounts. The source account must
// have authorized the transaction.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check does not look at the balance, an underfunded transfer fails only
// on delivery.
func (h SendHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.authorized(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.authorized(ctx, tx)
	if err != nil {
		return nil, err
	}
	err = h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount)
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// authorized loads the message and checks that its source signed it.
func (h SendHandler) authorized(ctx custody.Context, tx custody.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "no signature of source %s", msg.Source)
	}
	return &msg, nil
}
