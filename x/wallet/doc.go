/*
Package wallet implements multi-signature custody wallets.

A wallet holds funds on an account that only this extension can move. A set
of signers jointly authorizes outbound transfers: any signer may initiate a
transaction, which counts as its first approval, and the funds are released
to the receiver the moment the number of distinct approvals reaches the
wallet quorum. A transaction is released at most once and stays in the
ledger forever.

The owner of a wallet manages the signer list. Ownership is handed over in
two steps: the current owner nominates a pending owner, and the nominated
account must claim the ownership before it gains any rights.

Transactions are identified by a per wallet sequence starting at 1. The
ledger is ordered by that identifier, so the transaction at zero based
position i always has the identifier i+1. Signers are addressed by their
zero based position in the signer list. Removing a signer shifts the
position of every signer after it.
*/
package wallet
