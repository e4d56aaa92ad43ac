package custody

// Checker validates a transaction against the state without committing
// anything. It runs for mempool admission.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction of a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes the messages routed to it, for example all the
// wallet paths.
type Handler interface {
	Checker
	Deliverer
}

// Decorator runs around the next handler of a chain, for example to verify
// signatures or to recover from a panic. It decides whether and with which
// context next is called.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}
