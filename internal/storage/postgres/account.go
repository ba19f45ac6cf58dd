package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

type accountRow struct {
	ID           int64           `db:"id"`
	EncodedKey   string          `db:"encoded_key"`
	OwnerID      int64           `db:"owner_id"`
	Balance      decimal.Decimal `db:"balance"`
	LastSequence int64           `db:"last_sequence"`
	IsActive     bool            `db:"is_active"`
	CreatedAt    time.Time       `db:"created_at"`
}

var accountColumns = []any{
	"id", "encoded_key", "owner_id", "balance", "last_sequence", "is_active", "created_at",
}

func rowToAccount(row accountRow) *account.Account {
	return &account.Account{
		ID:           row.ID,
		EncodedKey:   row.EncodedKey,
		OwnerID:      row.OwnerID,
		Balance:      row.Balance,
		LastSequence: row.LastSequence,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
	}
}

type accountReader struct {
	exec bob.Executor
}

var _ account.Reader = (*accountReader)(nil)

func (r *accountReader) FindByKey(ctx context.Context, encodedKey string) (*account.Account, error) {
	return r.findByKey(ctx, encodedKey, false)
}

func (r *accountReader) findByKey(ctx context.Context, encodedKey string, forUpdate bool) (*account.Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From("savings_accounts"),
		sm.Where(psql.Quote("encoded_key").EQ(psql.Arg(encodedKey))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return rowToAccount(row), nil
}

type accountWriter struct {
	accountReader
	exec bob.Executor
}

var _ account.Writer = (*accountWriter)(nil)

func (w *accountWriter) FindByKeyForUpdate(ctx context.Context, encodedKey string) (*account.Account, error) {
	return w.findByKey(ctx, encodedKey, true)
}

// Insert relies on the unique index on encoded_key for duplicate-create
// race safety: ON CONFLICT DO NOTHING waits out a concurrent insert of the
// same key and then returns no row, which surfaces as ErrDuplicateKey
// without poisoning the transaction, so the caller can re-read the winner.
func (w *accountWriter) Insert(ctx context.Context, create *account.AccountCreate) (*account.Account, error) {
	q := psql.Insert(
		im.Into("savings_accounts", "encoded_key", "owner_id", "balance", "last_sequence", "is_active"),
		im.Values(psql.Arg(create.EncodedKey, create.OwnerID, decimal.Zero, 0, true)),
		im.OnConflict("encoded_key").DoNothing(),
		im.Returning(accountColumns...),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[accountRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDuplicateKey
		}
		return nil, err
	}
	return rowToAccount(row), nil
}

func (w *accountWriter) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal, lastSequence int64) error {
	q := psql.Update(
		um.Table("savings_accounts"),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("last_sequence").ToArg(lastSequence),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.exec, q)
	return err
}
