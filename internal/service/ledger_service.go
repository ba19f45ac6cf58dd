package service

import (
	"context"
	"errors"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// LedgerService handles the read side of the ledger. Writes go through the
// operator so they pick up the per-account transaction discipline.
type LedgerService struct {
	storage storage.Storage
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store storage.Storage) *LedgerService {
	return &LedgerService{storage: store}
}

// GetAccount retrieves an account by encoded key. Absence is reported as
// actions.ErrAccountNotFound so a missing account is never mistaken for one
// with a zero balance.
func (s *LedgerService) GetAccount(ctx context.Context, encodedKey string) (*Account, error) {
	row, err := s.storage.Accounts().FindByKey(ctx, encodedKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, actions.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:         row.ID,
		EncodedKey: row.EncodedKey,
		OwnerID:    row.OwnerID,
		Balance:    row.Balance,
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// ListMovements returns the account's full movement history, newest first.
// An unknown account or one without movements yields an empty slice.
func (s *LedgerService) ListMovements(ctx context.Context, encodedKey string) ([]Movement, error) {
	rows, err := s.storage.Movements().ListByKey(ctx, encodedKey)
	if err != nil {
		return nil, err
	}

	converted := make([]Movement, len(rows))
	for i, row := range rows {
		converted[i] = Movement{
			Sequence:      row.Sequence,
			Kind:          string(row.Kind),
			Amount:        row.Amount,
			Memo:          row.Memo,
			Reference:     row.Reference,
			BalanceBefore: row.BalanceBefore,
			BalanceAfter:  row.BalanceAfter,
			RecordedAt:    row.RecordedAt,
			Channel:       row.Channel,
		}
	}
	return converted, nil
}
