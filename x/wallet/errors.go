package wallet

import "github.com/iov-one/custody/errors"

// ErrDuplicateApproval is returned when a signer approves the same
// transaction more than once.
var ErrDuplicateApproval = errors.Register(200, "can't sign twice")
