package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/storage/movement"
)

type movementRow struct {
	AccountID         int64           `db:"account_id"`
	Sequence          int64           `db:"sequence"`
	AccountEncodedKey string          `db:"account_encoded_key"`
	Kind              string          `db:"kind"`
	Amount            decimal.Decimal `db:"amount"`
	Memo              string          `db:"memo"`
	Reference         string          `db:"reference"`
	BalanceBefore     decimal.Decimal `db:"balance_before"`
	BalanceAfter      decimal.Decimal `db:"balance_after"`
	RecordedAt        time.Time       `db:"recorded_at"`
	Channel           string          `db:"channel"`
}

var movementColumns = []any{
	"account_id", "sequence", "account_encoded_key", "kind", "amount", "memo",
	"reference", "balance_before", "balance_after", "recorded_at", "channel",
}

func rowToMovement(row movementRow) *movement.Movement {
	return &movement.Movement{
		AccountID:         row.AccountID,
		Sequence:          row.Sequence,
		AccountEncodedKey: row.AccountEncodedKey,
		Kind:              movement.Kind(row.Kind),
		Amount:            row.Amount,
		Memo:              row.Memo,
		Reference:         row.Reference,
		BalanceBefore:     row.BalanceBefore,
		BalanceAfter:      row.BalanceAfter,
		RecordedAt:        row.RecordedAt,
		Channel:           row.Channel,
	}
}

type movementReader struct {
	exec bob.Executor
}

var _ movement.Reader = (*movementReader)(nil)

// ListByKey returns the account's movements newest first. Sequence breaks
// recorded_at ties because the timestamp resolution is not guaranteed to
// separate movements committed close together.
func (r *movementReader) ListByKey(ctx context.Context, encodedKey string) ([]*movement.Movement, error) {
	q := psql.Select(
		sm.Columns(movementColumns...),
		sm.From("movements"),
		sm.Where(psql.Quote("account_encoded_key").EQ(psql.Arg(encodedKey))),
		sm.OrderBy("recorded_at").Desc(),
		sm.OrderBy("sequence").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[movementRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*movement.Movement, len(rows))
	for i, row := range rows {
		result[i] = rowToMovement(row)
	}
	return result, nil
}

type movementWriter struct {
	exec bob.Executor
}

var _ movement.Writer = (*movementWriter)(nil)

func (w *movementWriter) Insert(ctx context.Context, create *movement.MovementCreate) error {
	q := psql.Insert(
		im.Into("movements", "account_id", "sequence", "account_encoded_key", "kind",
			"amount", "memo", "reference", "balance_before", "balance_after",
			"recorded_at", "channel"),
		im.Values(psql.Arg(create.AccountID, create.Sequence, create.AccountEncodedKey,
			string(create.Kind), create.Amount, create.Memo, create.Reference,
			create.BalanceBefore, create.BalanceAfter, create.RecordedAt, create.Channel)),
	)
	_, err := bob.Exec(ctx, w.exec, q)
	return err
}
