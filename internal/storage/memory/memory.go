// Package memory is an in-process ledger store. It exists for tests and for
// running the server without Postgres (STORAGE_BACKEND=memory).
//
// Locking mirrors the row-lock discipline of the Postgres backend: each
// account carries its own mutex, held from FindByKeyForUpdate until the
// transaction commits or rolls back, so writers of the same account are
// serialized while writers of different accounts never block each other.
// A store-level mutex guards only the maps and committed state, and is never
// held while waiting for an account lock.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/movement"
)

type record struct {
	// txMu serializes balance-affecting transactions for this account.
	txMu sync.Mutex

	// Committed state, guarded by Store.mu.
	account   account.Account
	movements []*movement.Movement
}

// Store is the in-memory ledger store.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	byKey    map[string]*record
	reserved map[string]chan struct{}
}

var _ storage.Storage = (*Store)(nil)

func New() *Store {
	return &Store{
		byKey:    make(map[string]*record),
		reserved: make(map[string]chan struct{}),
	}
}

func (s *Store) Accounts() account.Reader   { return &reader{store: s} }
func (s *Store) Movements() movement.Reader { return &reader{store: s} }

func (s *Store) Write(ctx context.Context) (storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w := &writer{store: s, locked: make(map[string]*record)}
	w.accounts = &accountWriter{w: w}
	w.movements = &movementWriter{w: w}
	return w, nil
}

// findCommitted returns a copy of the committed account for a key.
func (s *Store) findCommitted(encodedKey string) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byKey[encodedKey]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := rec.account
	return &cp, nil
}

// reserveKey claims an encoded key for insertion. If another transaction is
// mid-creation on the same key, it waits for that outcome first, the same
// way a unique-index insert blocks in Postgres. ErrDuplicateKey means a
// committed account now owns the key.
func (s *Store) reserveKey(encodedKey string) error {
	for {
		s.mu.Lock()
		if _, ok := s.byKey[encodedKey]; ok {
			s.mu.Unlock()
			return storage.ErrDuplicateKey
		}
		ch, inFlight := s.reserved[encodedKey]
		if !inFlight {
			s.reserved[encodedKey] = make(chan struct{})
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()
		<-ch
	}
}

// resolveKey publishes the created record (commit) or abandons the
// reservation (rollback), then wakes any waiting inserters.
func (s *Store) resolveKey(encodedKey string, rec *record) {
	s.mu.Lock()
	if rec != nil {
		s.byKey[encodedKey] = rec
	}
	ch := s.reserved[encodedKey]
	delete(s.reserved, encodedKey)
	s.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

type reader struct {
	store *Store
}

func (r *reader) FindByKey(ctx context.Context, encodedKey string) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.store.findCommitted(encodedKey)
}

func (r *reader) ListByKey(ctx context.Context, encodedKey string) ([]*movement.Movement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.byKey[encodedKey]
	if !ok {
		return []*movement.Movement{}, nil
	}
	out := make([]*movement.Movement, len(rec.movements))
	for i, m := range rec.movements {
		cp := *m
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].RecordedAt.After(out[j].RecordedAt)
		}
		return out[i].Sequence > out[j].Sequence
	})
	return out, nil
}

// stagedUpdate holds a pending balance/counter write for a locked account.
type stagedUpdate struct {
	balance      account.Account
	hasUpdate    bool
	newMovements []*movement.Movement
}

type writer struct {
	store     *Store
	accounts  *accountWriter
	movements *movementWriter

	// locked maps encoded key to the record whose txMu this transaction
	// holds.
	locked map[string]*record

	// created is the record staged by Insert, nil if none. Its key is
	// reserved until the transaction resolves.
	created    *record
	createdKey string

	staged map[int64]*stagedUpdate
	done   bool
}

var _ storage.Writer = (*writer)(nil)

func (w *writer) Accounts() account.Writer   { return w.accounts }
func (w *writer) Movements() movement.Writer { return w.movements }

func (w *writer) Commit(ctx context.Context) error {
	if w.done {
		return nil
	}
	w.done = true

	w.store.mu.Lock()
	for _, rec := range w.locked {
		if upd, ok := w.staged[rec.account.ID]; ok {
			if upd.hasUpdate {
				rec.account = upd.balance
			}
			rec.movements = append(rec.movements, upd.newMovements...)
		}
	}
	w.store.mu.Unlock()

	if w.created != nil {
		if upd, ok := w.staged[w.created.account.ID]; ok {
			if upd.hasUpdate {
				w.created.account = upd.balance
			}
			w.created.movements = append(w.created.movements, upd.newMovements...)
		}
		w.store.resolveKey(w.createdKey, w.created)
	}
	w.unlockAll()
	return nil
}

func (w *writer) Rollback() error {
	if w.done {
		return nil
	}
	w.done = true
	if w.created != nil {
		w.store.resolveKey(w.createdKey, nil)
	}
	w.unlockAll()
	return nil
}

func (w *writer) unlockAll() {
	for _, rec := range w.locked {
		rec.txMu.Unlock()
	}
	w.locked = nil
}

// lockedOrCreated returns the in-transaction view of an account this
// transaction may mutate, by id.
func (w *writer) lockedOrCreated(id int64) *account.Account {
	for _, rec := range w.locked {
		if rec.account.ID == id {
			return &rec.account
		}
	}
	if w.created != nil && w.created.account.ID == id {
		return &w.created.account
	}
	return nil
}

func (w *writer) ensureStaged(id int64) *stagedUpdate {
	if w.staged == nil {
		w.staged = make(map[int64]*stagedUpdate)
	}
	upd, ok := w.staged[id]
	if !ok {
		upd = &stagedUpdate{}
		w.staged[id] = upd
	}
	return upd
}

type accountWriter struct {
	w *writer
}

func (aw *accountWriter) FindByKey(ctx context.Context, encodedKey string) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return aw.w.store.findCommitted(encodedKey)
}

func (aw *accountWriter) FindByKeyForUpdate(ctx context.Context, encodedKey string) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rec, ok := aw.w.locked[encodedKey]; ok {
		cp := rec.account
		return &cp, nil
	}

	aw.w.store.mu.Lock()
	rec, ok := aw.w.store.byKey[encodedKey]
	aw.w.store.mu.Unlock()
	if !ok {
		return nil, storage.ErrNotFound
	}

	// Block until every earlier writer of this account resolves, without
	// holding the store lock.
	rec.txMu.Lock()
	aw.w.locked[encodedKey] = rec

	aw.w.store.mu.Lock()
	cp := rec.account
	aw.w.store.mu.Unlock()
	return &cp, nil
}

func (aw *accountWriter) Insert(ctx context.Context, create *account.AccountCreate) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := aw.w.store.reserveKey(create.EncodedKey); err != nil {
		return nil, err
	}

	aw.w.store.mu.Lock()
	aw.w.store.nextID++
	id := aw.w.store.nextID
	aw.w.store.mu.Unlock()

	rec := &record{
		account: account.Account{
			ID:         id,
			EncodedKey: create.EncodedKey,
			OwnerID:    create.OwnerID,
			IsActive:   true,
			CreatedAt:  time.Now().UTC(),
		},
	}
	aw.w.created = rec
	aw.w.createdKey = create.EncodedKey

	cp := rec.account
	return &cp, nil
}

func (aw *accountWriter) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal, lastSequence int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	acct := aw.w.lockedOrCreated(id)
	if acct == nil {
		return storage.ErrNotFound
	}
	upd := aw.w.ensureStaged(id)
	staged := *acct
	staged.Balance = balance
	staged.LastSequence = lastSequence
	upd.balance = staged
	upd.hasUpdate = true
	return nil
}

type movementWriter struct {
	w *writer
}

func (mw *movementWriter) Insert(ctx context.Context, create *movement.MovementCreate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mw.w.lockedOrCreated(create.AccountID) == nil {
		return storage.ErrNotFound
	}
	upd := mw.w.ensureStaged(create.AccountID)
	upd.newMovements = append(upd.newMovements, &movement.Movement{
		AccountID:         create.AccountID,
		Sequence:          create.Sequence,
		AccountEncodedKey: create.AccountEncodedKey,
		Kind:              create.Kind,
		Amount:            create.Amount,
		Memo:              create.Memo,
		Reference:         create.Reference,
		BalanceBefore:     create.BalanceBefore,
		BalanceAfter:      create.BalanceAfter,
		RecordedAt:        create.RecordedAt,
		Channel:           create.Channel,
	})
	return nil
}
