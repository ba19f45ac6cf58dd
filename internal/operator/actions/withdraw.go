package actions

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/movement"
)

// Withdraw debits an account under the same lock discipline as Deposit.
// The funds check happens on the locked balance, so a withdrawal can never
// push the balance below zero under any interleaving. Withdrawing the full
// balance is allowed.
type Withdraw struct {
	EncodedKey string
	Amount     decimal.Decimal
	Memo       string
	Reference  string
	MaxAmount  decimal.Decimal

	Result Receipt
}

var _ IAction = (*Withdraw)(nil)

func (a *Withdraw) Perform(ctx context.Context, writer storage.Writer) error {
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

	if acct.Balance.LessThan(a.Amount) {
		return ErrInsufficientFunds
	}

	receipt, err := appendMovement(ctx, writer, acct, movement.KindWithdraw, a.Amount, a.Memo, a.Reference)
	if err != nil {
		return err
	}
	a.Result = receipt
	return nil
}

// appendMovement applies one balance-affecting event to a locked account:
// next sequence, balance snapshots, movement row, and counter bump together.
func appendMovement(
	ctx context.Context,
	writer storage.Writer,
	acct *account.Account,
	kind movement.Kind,
	amount decimal.Decimal,
	memo string,
	reference string,
) (Receipt, error) {
	sequence := acct.LastSequence + 1
	balanceAfter := acct.Balance.Add(amount)
	if kind == movement.KindWithdraw {
		balanceAfter = acct.Balance.Sub(amount)
	}
	recordedAt := time.Now().UTC()

	err := writer.Movements().Insert(ctx, &movement.MovementCreate{
		AccountID:         acct.ID,
		Sequence:          sequence,
		AccountEncodedKey: acct.EncodedKey,
		Kind:              kind,
		Amount:            amount,
		Memo:              memo,
		Reference:         reference,
		BalanceBefore:     acct.Balance,
		BalanceAfter:      balanceAfter,
		RecordedAt:        recordedAt,
		Channel:           movement.ChannelAPI,
	})
	if err != nil {
		return Receipt{}, err
	}

	if err := writer.Accounts().UpdateBalance(ctx, acct.ID, balanceAfter, sequence); err != nil {
		return Receipt{}, err
	}

	return Receipt{
		MovementID:   sequence,
		EncodedKey:   acct.EncodedKey,
		RecordedAt:   recordedAt,
		BalanceAfter: balanceAfter,
	}, nil
}
