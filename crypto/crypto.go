/*
Package crypto provides the keys and signatures used to authorize custody
transactions. Only ed25519 is supported.

A public key is exposed to the rest of the application as a Condition of the
form "sigs/ed25519/<public key>", its address is the address of the signer.
*/
package crypto

import (
	custody "github.com/iov-one/custody"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() custody.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}
