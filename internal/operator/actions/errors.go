package actions

import "errors"

// Domain errors raised by ledger actions. These are business outcomes, not
// system failures; the HTTP layer maps them to status codes (404, 409, 400).
var (
	// ErrAccountNotFound means the encoded key resolves to no account.
	ErrAccountNotFound = errors.New("savings account not found")

	// ErrInsufficientFunds rejects a withdrawal that would overdraw the
	// account. Nothing is mutated when it is returned.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount rejects a non-positive or over-limit amount before
	// any storage access.
	ErrInvalidAmount = errors.New("invalid amount")
)
