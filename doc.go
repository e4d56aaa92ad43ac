/*
Package custody defines the interfaces used throughout the custody
application: storage, transactions, handlers and queries. It also contains
helpers to work with context, conditions and ABCI results.

The custody wallets are implemented as the x/wallet extension. The
application assembled in cmd/custodyd routes signed transactions to it through
a chain of decorators.
*/
package custody
