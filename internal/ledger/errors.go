package ledger

import "errors"

var (
	// ErrAccountNotFound means the owner has no wallet row.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means the balance cannot cover the wager. The
	// settlement writes nothing when this is returned.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict means a concurrent settlement changed the account
	// between read and write. The whole transaction is retried.
	ErrConflict = errors.New("settlement conflict")
)
