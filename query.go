package custody

import (
	"fmt"
	"sort"
	"strings"
)

// Query modifiers follow a "?" in the query path.
const (
	// KeyQueryMod looks up the exact key given as query data.
	KeyQueryMod = ""
	// PrefixQueryMod returns every key starting with the query data.
	PrefixQueryMod = "prefix"
)

// Model is one key value pair of a query result.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler serves one query path. mod is one of the query modifiers.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query paths of one extension to a router.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches query paths such as "/wallets" to their handlers.
// The zero value is not usable, create one with NewQueryRouter.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: map[string]QueryHandler{}}
}

// RegisterAll applies every register to r.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, fn := range registers {
		fn(r)
	}
}

// Register binds path to h. Paths start with a slash and are bound once,
// anything else is a programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	switch _, taken := r.routes[path]; {
	case !strings.HasPrefix(path, "/"):
		panic(fmt.Sprintf("query path %q must start with a slash", path))
	case taken:
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// Paths lists the bound paths in lexical order.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
