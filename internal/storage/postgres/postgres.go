// Package postgres is the durable ledger store. Per-account serialization
// comes from row-level locks: balance-affecting transactions read the
// account with SELECT ... FOR UPDATE and hold the lock until commit.
package postgres

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/movement"
)

// DB is the Postgres-backed ledger store.
type DB struct {
	db   *sql.DB
	exec bob.DB
}

var _ storage.Storage = (*DB)(nil)

// Open connects using the configured connection settings.
func Open(env *config.Config) *DB {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}

	return New(db)
}

// New wraps an existing database handle.
func New(db *sql.DB) *DB {
	return &DB{db: db, exec: bob.NewDB(db)}
}

func (d *DB) Accounts() account.Reader {
	return &accountReader{exec: d.exec}
}

func (d *DB) Movements() movement.Reader {
	return &movementReader{exec: d.exec}
}

func (d *DB) Write(ctx context.Context) (storage.Writer, error) {
	tx, err := d.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &writer{
		tx:        tx,
		accounts:  &accountWriter{accountReader: accountReader{exec: tx}, exec: tx},
		movements: &movementWriter{exec: tx},
	}, nil
}

type writer struct {
	tx        bob.Tx
	accounts  *accountWriter
	movements *movementWriter
}

var _ storage.Writer = (*writer)(nil)

func (w *writer) Accounts() account.Writer   { return w.accounts }
func (w *writer) Movements() movement.Writer { return w.movements }

func (w *writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
