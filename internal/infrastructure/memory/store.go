// Package memory keeps every gateway in process. It backs DB_DRIVER=memory
// and the service and handler tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
)

type record[T any] struct {
	seq int64
	val T
}

// table stores rows without their relations, ordered by insertion
type table[T any] struct {
	rows map[uuid.UUID]record[T]
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[uuid.UUID]record[T])}
}

func (t table[T]) clone() table[T] {
	return table[T]{rows: maps.Clone(t.rows)}
}

func (t table[T]) get(id uuid.UUID) (T, bool) {
	rec, ok := t.rows[id]
	return rec.val, ok
}

func (t table[T]) put(id uuid.UUID, seq int64, v T) {
	if rec, ok := t.rows[id]; ok {
		seq = rec.seq
	}
	t.rows[id] = record[T]{seq: seq, val: v}
}

func (t table[T]) all() []T {
	recs := slices.Collect(maps.Values(t.rows))
	slices.SortFunc(recs, func(a, b record[T]) int { return int(a.seq - b.seq) })
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.val)
	}
	return out
}

type state struct {
	seq        int64
	persons    table[entity.Person]
	customers  table[entity.Customer]
	categories table[entity.ProductCategory]
	products   table[entity.Product]
	receipts   table[entity.Receipt]
	lines      table[entity.ReceiptLine]
}

func newState() *state {
	return &state{
		persons:    newTable[entity.Person](),
		customers:  newTable[entity.Customer](),
		categories: newTable[entity.ProductCategory](),
		products:   newTable[entity.Product](),
		receipts:   newTable[entity.Receipt](),
		lines:      newTable[entity.ReceiptLine](),
	}
}

func (s *state) clone() *state {
	return &state{
		seq:        s.seq,
		persons:    s.persons.clone(),
		customers:  s.customers.clone(),
		categories: s.categories.clone(),
		products:   s.products.clone(),
		receipts:   s.receipts.clone(),
		lines:      s.lines.clone(),
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// Store is an in-process unit of work. Execute serializes all work and
// publishes the changed copy only when fn succeeds.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// NewTransactionManager returns s as a repository.TransactionManager
func (s *Store) NewTransactionManager() repository.TransactionManager {
	return s
}

func (s *Store) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.data.clone()
	if err := fn(&factory{st: tx, now: s.now}); err != nil {
		return err
	}
	s.data = tx
	return nil
}

type factory struct {
	st  *state
	now func() time.Time
}

func (f *factory) NewCustomerRepository() repository.CustomerRepository {
	return &customerRepository{st: f.st, now: f.now}
}

func (f *factory) NewProductRepository() repository.ProductRepository {
	return &productRepository{st: f.st, now: f.now}
}

func (f *factory) NewCategoryRepository() repository.CategoryRepository {
	return &categoryRepository{st: f.st, now: f.now}
}

func (f *factory) NewReceiptRepository() repository.ReceiptRepository {
	return &receiptRepository{st: f.st, now: f.now}
}

func (f *factory) NewReceiptLineRepository() repository.ReceiptLineRepository {
	return &receiptLineRepository{st: f.st, now: f.now}
}
