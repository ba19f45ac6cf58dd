package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a savings account record.
type Account struct {
	ID           int64
	EncodedKey   string
	OwnerID      int64
	Balance      decimal.Decimal
	LastSequence int64
	IsActive     bool
	CreatedAt    time.Time
}

// AccountCreate is the input for creating a new account. Balance starts at
// zero and the movement counter at zero; neither is caller-settable.
type AccountCreate struct {
	EncodedKey string
	OwnerID    int64
}

// Reader defines read-only account storage operations.
type Reader interface {
	// FindByKey retrieves the account for an encoded key, or ErrNotFound.
	FindByKey(ctx context.Context, encodedKey string) (*Account, error)
}

// Writer defines account storage operations available inside a transaction.
type Writer interface {
	Reader

	// FindByKeyForUpdate retrieves the account and holds its write lock
	// until the transaction ends. Concurrent writers of the same account
	// block here; writers of other accounts do not.
	FindByKeyForUpdate(ctx context.Context, encodedKey string) (*Account, error)

	// Insert creates a new account with zero balance. Returns
	// ErrDuplicateKey if the encoded key is already taken, waiting out any
	// in-flight creation of the same key first so a follow-up FindByKey
	// sees the committed row.
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)

	// UpdateBalance sets the balance and movement counter for an account.
	// Only valid on an account the transaction holds the lock for.
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal, lastSequence int64) error
}
