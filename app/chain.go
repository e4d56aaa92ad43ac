package app

import (
	"reflect"

	custody "github.com/iov-one/custody"
)

// Decorators is an ordered list of decorators waiting for the handler they
// wrap. The first decorator is the outermost one.
//
//	app.ChainDecorators(
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators struct {
	chain []custody.Decorator
}

// ChainDecorators starts a new decorator list. Nil entries are skipped.
func ChainDecorators(ds ...custody.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a copy of d extended with ds. Nil entries are skipped.
func (d Decorators) Chain(ds ...custody.Decorator) Decorators {
	chain := make([]custody.Decorator, len(d.chain), len(d.chain)+len(ds))
	copy(chain, d.chain)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

// isNilDecorator also catches typed nil pointers, which an interface nil
// check misses.
func isNilDecorator(d custody.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the list into a single handler that runs every
// decorator in order before h.
func (d Decorators) WithHandler(h custody.Handler) custody.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{dec: d.chain[i], next: h}
	}
	return h
}

// link runs one decorator around the rest of the chain.
type link struct {
	dec  custody.Decorator
	next custody.Handler
}

var _ custody.Handler = link{}

func (l link) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
