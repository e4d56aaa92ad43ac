/*
Package cash keeps the native value unit balances of all accounts.

It provides the value transfer primitive used by other extensions through the
Controller interface, a genesis initializer that configures the currency
ticker and funds accounts, and a handler for plain transfers between
accounts.
*/
package cash
