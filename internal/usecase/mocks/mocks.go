package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

// Store is an in-memory backing for the fake repositories. Writes made through a
// FakeTransaction only become visible after Commit.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry
	audits  []*domain.AuditLog
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*domain.Entry)}
}

// Seed stores entry directly, bypassing transactions.
func (s *Store) Seed(entry *domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = cloneEntry(entry)
}

// Entry returns a copy of the committed entry with id.
func (s *Store) Entry(id string) (*domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return cloneEntry(e), true
}

// AuditLogs returns all committed audit rows in insertion order.
func (s *Store) AuditLogs() []*domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.AuditLog, len(s.audits))
	for i, l := range s.audits {
		c := *l
		out[i] = &c
	}
	return out
}

// FakeTransaction stages writes until Commit.
type FakeTransaction struct {
	store      *Store
	entries    []*domain.Entry
	audits     []*domain.AuditLog
	committed  bool
	rolledBack bool

	CommitErr error
}

// Commit applies the staged writes.
func (t *FakeTransaction) Commit(ctx context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	if t.committed || t.rolledBack {
		return errors.New("transaction already closed")
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, e := range t.entries {
		t.store.entries[e.ID] = e
	}
	t.store.audits = append(t.store.audits, t.audits...)
	t.committed = true
	return nil
}

// Rollback discards the staged writes. It is a no-op after Commit.
func (t *FakeTransaction) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	t.entries = nil
	t.audits = nil
	t.rolledBack = true
	return nil
}

// Committed reports whether Commit succeeded.
func (t *FakeTransaction) Committed() bool { return t.committed }

// RolledBack reports whether the transaction was discarded.
func (t *FakeTransaction) RolledBack() bool { return t.rolledBack }

// FakeTransactionManager begins FakeTransactions against a Store.
type FakeTransactionManager struct {
	store *Store

	mu  sync.Mutex
	Txs []*FakeTransaction

	BeginErr error
}

// NewFakeTransactionManager creates a FakeTransactionManager for store.
func NewFakeTransactionManager(store *Store) *FakeTransactionManager {
	return &FakeTransactionManager{store: store}
}

// Begin starts a new transaction.
func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &FakeTransaction{store: m.store}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// InMemoryEntryRepository implements usecase.EntryRepository on a Store.
type InMemoryEntryRepository struct {
	store *Store

	CreateErr error
	UpdateErr error
}

// NewInMemoryEntryRepository creates an entry repository backed by store.
func NewInMemoryEntryRepository(store *Store) *InMemoryEntryRepository {
	return &InMemoryEntryRepository{store: store}
}

func (r *InMemoryEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	ftx, err := fakeTx(tx)
	if err != nil {
		return err
	}
	if _, exists := r.store.Entry(entry.ID); exists {
		return fmt.Errorf("duplicate entry id %s", entry.ID)
	}
	ftx.entries = append(ftx.entries, cloneEntry(entry))
	return nil
}

func (r *InMemoryEntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	ftx, err := fakeTx(tx)
	if err != nil {
		return err
	}
	if _, exists := r.store.Entry(entry.ID); !exists {
		return domain.ErrEntryNotFound
	}
	ftx.entries = append(ftx.entries, cloneEntry(entry))
	return nil
}

func (r *InMemoryEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	e, ok := r.store.Entry(id)
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return e, nil
}

func (r *InMemoryEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	if _, err := fakeTx(tx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *InMemoryEntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	matched := r.matching(filter)

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	if filter.Offset >= len(matched) {
		return []*domain.Entry{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *InMemoryEntryRepository) Stats(ctx context.Context, filter domain.EntryFilter) (*domain.EntryStats, error) {
	stats := &domain.EntryStats{TotalPrincipal: decimal.Zero, TotalInterest: decimal.Zero}
	for _, e := range r.matching(filter) {
		stats.TotalEntries++
		switch e.Status {
		case domain.EntryStatusActive:
			stats.ActiveEntries++
		case domain.EntryStatusReleased:
			stats.ReleasedEntries++
		}
		stats.TotalPrincipal = stats.TotalPrincipal.Add(e.Amount)
		if e.InterestAmount != nil {
			stats.TotalInterest = stats.TotalInterest.Add(*e.InterestAmount)
		}
	}
	return stats, nil
}

func (r *InMemoryEntryRepository) matching(filter domain.EntryFilter) []*domain.Entry {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var out []*domain.Entry
	for _, e := range r.store.entries {
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.DateFrom != nil && e.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.Date.After(*filter.DateTo) {
			continue
		}
		if filter.CustomerName != "" && !strings.Contains(strings.ToLower(e.CustomerName), strings.ToLower(filter.CustomerName)) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.SerialNumber), search) &&
			!strings.Contains(strings.ToLower(e.CustomerName), search) &&
			!strings.Contains(strings.ToLower(e.OwnerName), search) {
			continue
		}
		out = append(out, cloneEntry(e))
	}
	return out
}

// InMemoryAuditRepository implements usecase.AuditRepository on a Store.
type InMemoryAuditRepository struct {
	store *Store

	CreateErr error
}

// NewInMemoryAuditRepository creates an audit repository backed by store.
func NewInMemoryAuditRepository(store *Store) *InMemoryAuditRepository {
	return &InMemoryAuditRepository{store: store}
}

func (r *InMemoryAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	ftx, err := fakeTx(tx)
	if err != nil {
		return err
	}
	c := *log
	ftx.audits = append(ftx.audits, &c)
	return nil
}

func (r *InMemoryAuditRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.AuditLog, error) {
	var out []*domain.AuditLog
	for _, l := range r.store.AuditLogs() {
		if l.EntryID == entryID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *InMemoryAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	logs := r.store.AuditLogs()
	var out []*domain.AuditLog
	for i := len(logs) - 1; i >= 0; i-- {
		l := logs[i]
		if filter.EntryID != "" && l.EntryID != filter.EntryID {
			continue
		}
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		out = append(out, l)
	}

	if filter.Offset >= len(out) {
		return []*domain.AuditLog{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// SequenceIDGenerator returns prefix-1, prefix-2, ...
type SequenceIDGenerator struct {
	mu     sync.Mutex
	Prefix string
	n      int
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Advance moves the clock forward by d. Use a *FixedClock to share the change.
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// MemoryCache is a map-backed usecase.Cache. TTLs are ignored.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte

	Gets int
	Sets int
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	v, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	c.data[key] = value
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func fakeTx(tx usecase.Transaction) (*FakeTransaction, error) {
	ftx, ok := tx.(*FakeTransaction)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	if ftx.committed || ftx.rolledBack {
		return nil, errors.New("transaction already closed")
	}
	return ftx, nil
}

func cloneEntry(e *domain.Entry) *domain.Entry {
	c := *e
	if e.ToDate != nil {
		v := *e.ToDate
		c.ToDate = &v
	}
	if e.InterestRate != nil {
		v := *e.InterestRate
		c.InterestRate = &v
	}
	if e.InterestAmount != nil {
		v := *e.InterestAmount
		c.InterestAmount = &v
	}
	if e.ReleasedAt != nil {
		v := *e.ReleasedAt
		c.ReleasedAt = &v
	}
	return &c
}
