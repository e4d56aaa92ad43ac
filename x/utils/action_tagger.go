package utils

import (
	custody "github.com/iov-one/custody"
)

// ActionKey is the tag key holding the path of the delivered message, for
// example "wallet/approve". Clients use it to search or subscribe to a kind
// of transaction.
const ActionKey = "action"

// ActionTagger tags every successfully delivered transaction with the
// path of its message. Place it last in the chain, right before the router.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver fails before running the transaction if it carries no message.
func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = new(custody.DeliverResult)
	}
	res.Tags = append(res.Tags, custody.Tag(ActionKey, msg.Path()))
	return res, nil
}
