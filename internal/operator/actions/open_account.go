package actions

import (
	"context"
	"errors"
	"time"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// OpenAccount creates a savings account idempotently. The encoded key is the
// caller's idempotency token: opening with a key that is already registered
// is a normal outcome reported through AlreadyExisted, never an error, and
// never creates a second account.
type OpenAccount struct {
	OwnerID    int64
	EncodedKey string

	Result OpenAccountResult
}

type OpenAccountResult struct {
	ID             int64
	EncodedKey     string
	CreatedAt      time.Time
	AlreadyExisted bool
}

var _ IAction = (*OpenAccount)(nil)

func (a *OpenAccount) Perform(ctx context.Context, writer storage.Writer) error {
	existing, err := writer.Accounts().FindByKey(ctx, a.EncodedKey)
	if err == nil {
		a.Result = existingResult(existing)
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	created, err := writer.Accounts().Insert(ctx, &account.AccountCreate{
		EncodedKey: a.EncodedKey,
		OwnerID:    a.OwnerID,
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		// Lost a creation race: the winner has committed by the time the
		// duplicate surfaces, so re-read and report it.
		existing, err := writer.Accounts().FindByKey(ctx, a.EncodedKey)
		if err != nil {
			return err
		}
		a.Result = existingResult(existing)
		return nil
	}
	if err != nil {
		return err
	}

	a.Result = OpenAccountResult{
		ID:         created.ID,
		EncodedKey: created.EncodedKey,
		CreatedAt:  created.CreatedAt,
	}
	return nil
}

func existingResult(acct *account.Account) OpenAccountResult {
	return OpenAccountResult{
		ID:             acct.ID,
		EncodedKey:     acct.EncodedKey,
		CreatedAt:      acct.CreatedAt,
		AlreadyExisted: true,
	}
}
