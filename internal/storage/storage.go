package storage

import (
	"context"
	"errors"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/movement"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	// Callers must treat it as an explicit signal, never as a zero value.
	ErrNotFound = errors.New("storage: record not found")

	// ErrDuplicateKey is returned when an insert collides with an existing
	// encoded key. For account creation this is an expected outcome, not a
	// failure.
	ErrDuplicateKey = errors.New("storage: duplicate key")
)

// Storage is the ledger store: the sole authority for account existence,
// balances, and movement history.
//
// The read side auto-commits. All mutation goes through Write, which opens
// one transaction; within it, balance-affecting work on a single account is
// serialized against every other writer of that account until Commit or
// Rollback.
type Storage interface {
	Accounts() account.Reader
	Movements() movement.Reader
	Write(ctx context.Context) (Writer, error)
}

// Writer is one open transaction. Either everything staged in it becomes
// visible atomically on Commit, or nothing does.
type Writer interface {
	Accounts() account.Writer
	Movements() movement.Writer
	Commit(ctx context.Context) error
	Rollback() error
}
