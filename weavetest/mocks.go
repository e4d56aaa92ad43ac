package weavetest

import custody "github.com/iov-one/custody"

// calls counts Check and Deliver invocations, successful or not.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a custody.Handler returning the configured results. An error
// field, when set, is returned instead of the result.
type Handler struct {
	calls

	CheckResult custody.CheckResult
	CheckErr    error

	DeliverResult custody.DeliverResult
	DeliverErr    error
}

var _ custody.Handler = (*Handler)(nil)

func (h *Handler) Check(custody.Context, custody.KVStore, custody.Tx) (*custody.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	// a copy, so that callers never modify the template
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(custody.Context, custody.KVStore, custody.Tx) (*custody.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator is a custody.Decorator that either fails with the configured
// error or passes the call to the next handler.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ custody.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler calling h through d.
func Decorate(h custody.Handler, d custody.Decorator) custody.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   custody.Handler
	decorator custody.Decorator
}

func (d decorated) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
