package movement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the two balance-affecting events.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
)

// ChannelAPI is the provenance tag stamped on movements originating from
// the HTTP API.
const ChannelAPI = "API"

// Movement is one committed balance-affecting event. Movements are
// append-only: never mutated, never deleted, keyed by (AccountID, Sequence).
type Movement struct {
	AccountID         int64
	Sequence          int64
	AccountEncodedKey string
	Kind              Kind
	Amount            decimal.Decimal
	Memo              string
	Reference         string
	BalanceBefore     decimal.Decimal
	BalanceAfter      decimal.Decimal
	RecordedAt        time.Time
	Channel           string
}

// MovementCreate is the input for appending a movement. Sequence is assigned
// by the caller from the account's movement counter, under the account lock.
type MovementCreate struct {
	AccountID         int64
	Sequence          int64
	AccountEncodedKey string
	Kind              Kind
	Amount            decimal.Decimal
	Memo              string
	Reference         string
	BalanceBefore     decimal.Decimal
	BalanceAfter      decimal.Decimal
	RecordedAt        time.Time
	Channel           string
}

// Reader defines read-only movement storage operations.
type Reader interface {
	// ListByKey returns every movement for the account, newest first:
	// recordedAt descending with sequence descending as the tie-break.
	// Unknown accounts yield an empty slice, not an error.
	ListByKey(ctx context.Context, encodedKey string) ([]*Movement, error)
}

// Writer defines movement storage operations available inside a transaction.
type Writer interface {
	// Insert appends a movement. Only valid while the transaction holds
	// the owning account's lock.
	Insert(ctx context.Context, create *MovementCreate) error
}
