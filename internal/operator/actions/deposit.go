package actions

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/movement"
)

// Deposit credits an account and appends the matching movement. The balance
// read, the new balance, and the appended movement all happen under the
// account's row lock, so the movement sequence is gapless and the balance
// can never lose a concurrent update.
type Deposit struct {
	EncodedKey string
	Amount     decimal.Decimal
	Memo       string
	Reference  string
	MaxAmount  decimal.Decimal

	Result Receipt
}

// Receipt confirms a committed movement. MovementID is the per-account
// sequence number.
type Receipt struct {
	MovementID   int64
	EncodedKey   string
	RecordedAt   time.Time
	BalanceAfter decimal.Decimal
}

var _ IAction = (*Deposit)(nil)

func (a *Deposit) Perform(ctx context.Context, writer storage.Writer) error {
	if err := validateAmount(a.Amount, a.MaxAmount); err != nil {
		return err
	}

	acct, err := writer.Accounts().FindByKeyForUpdate(ctx, a.EncodedKey)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	receipt, err := appendMovement(ctx, writer, acct, movement.KindDeposit, a.Amount, a.Memo, a.Reference)
	if err != nil {
		return err
	}
	a.Result = receipt
	return nil
}
