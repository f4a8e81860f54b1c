package transaction

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultRecentLimit is the number of records Recent returns when the caller
// passes a non-positive limit.
const DefaultRecentLimit = 5

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// Load returns the full persisted collection in storage order. A missing
	// or corrupted persisted value yields an empty collection, not an error.
	Load() ([]Transaction, error)

	// Save replaces the persisted collection wholesale. Last write wins.
	Save(txs []Transaction) error

	// Clear removes the persisted collection. Clearing an absent collection
	// is not an error.
	Clear() error
}

// Service is the sole authority over the transaction collection: it
// normalizes candidates on the way in, recomputes every aggregate from the
// full collection on each request, and notifies subscribers after every
// mutation.
type Service struct {
	repo Repository
	now  func() time.Time

	mu   sync.Mutex
	subs map[int]func()
	next int
}

// Option configures a Service.
type Option func(*Service)

// WithClock substitutes the wall clock, used for date normalization and
// creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
		subs: make(map[int]func()),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add normalizes the candidate, assigns a fresh id and creation timestamp,
// and appends it to the collection. Malformed input is coerced, never
// rejected. A failed persist is logged and swallowed; the normalized record
// is returned to the caller either way.
func (s *Service) Add(candidate Candidate) Transaction {
	s.mu.Lock()

	tx := Transaction{
		ID:          uuid.NewString(),
		Type:        NormalizeType(candidate.Type),
		Description: NormalizeDescription(candidate.Description),
		Amount:      NormalizeAmount(candidate.Amount),
		Category:    NormalizeCategory(candidate.Category),
		Date:        NormalizeDate(candidate.Date, s.now),
		Notes:       NormalizeNotes(candidate.Notes),
		CreatedAt:   s.now().Format(time.RFC3339),
	}

	txs := s.load()
	txs = append(txs, tx)

	if err := s.repo.Save(txs); err != nil {
		slog.Error("failed to persist transactions", "error", err, "count", len(txs))
	}

	s.mu.Unlock()
	s.broadcast()

	return tx
}

// Delete removes the record with the given id and returns the resulting
// collection. Deleting an absent id is a no-op, not an error.
func (s *Service) Delete(id string) []Transaction {
	s.mu.Lock()

	txs := s.load()
	kept := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}

	if err := s.repo.Save(kept); err != nil {
		slog.Error("failed to persist transactions", "error", err, "count", len(kept))
	}

	s.mu.Unlock()
	s.broadcast()

	return kept
}

// ClearAll destroys the entire persisted collection. It never fails the
// caller, even when nothing is persisted.
func (s *Service) ClearAll() {
	s.mu.Lock()

	if err := s.repo.Clear(); err != nil {
		slog.Error("failed to clear transactions", "error", err)
	}

	s.mu.Unlock()
	s.broadcast()
}

// All returns every stored record in storage order.
func (s *Service) All() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// ByType returns the records whose type matches exactly.
func (s *Service) ByType(t Type) []Transaction {
	return filter(s.All(), func(tx Transaction) bool { return tx.Type == t })
}

// ByCategory returns the records whose category matches exactly.
func (s *Service) ByCategory(category string) []Transaction {
	return filter(s.All(), func(tx Transaction) bool { return tx.Category == category })
}

// TotalIncome sums the amounts of all income records.
func (s *Service) TotalIncome() float64 {
	return sumAmounts(s.ByType(TypeIncome))
}

// TotalExpenses sums the amounts of all expense records.
func (s *Service) TotalExpenses() float64 {
	return sumAmounts(s.ByType(TypeExpense))
}

// Balance is total income minus total expenses.
func (s *Service) Balance() float64 {
	return s.TotalIncome() - s.TotalExpenses()
}

// SpendingByCategory maps each category to its summed expense amount.
// Income records never contribute; categories without expenses are absent
// from the result rather than present with value 0.
func (s *Service) SpendingByCategory() map[string]float64 {
	spending := make(map[string]float64)

	for _, tx := range s.ByType(TypeExpense) {
		category := tx.Category
		if category == "" {
			category = CategoryOther
		}

		spending[category] += safeAmount(tx.Amount)
	}

	return spending
}

// Recent returns the collection sorted by descending creation time,
// truncated to limit. A non-positive limit means DefaultRecentLimit.
func (s *Service) Recent(limit int) []Transaction {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	txs := s.All()

	sort.SliceStable(txs, func(i, j int) bool {
		return createdAt(txs[i]).After(createdAt(txs[j]))
	})

	if len(txs) > limit {
		txs = txs[:limit]
	}

	return txs
}

// Subscribe registers fn to run after every mutation of the collection. The
// broadcast carries no payload; subscribers re-read what they need. The
// returned function unsubscribes.
func (s *Service) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subs, id)
	}
}

// load reads the full collection, degrading to empty on any read failure.
// Callers must hold s.mu.
func (s *Service) load() []Transaction {
	txs, err := s.repo.Load()
	if err != nil {
		slog.Error("failed to load transactions", "error", err)
		return nil
	}

	return txs
}

func (s *Service) broadcast() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))

	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func filter(txs []Transaction, keep func(Transaction) bool) []Transaction {
	matched := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if keep(tx) {
			matched = append(matched, tx)
		}
	}

	return matched
}

func sumAmounts(txs []Transaction) float64 {
	var total float64
	for _, tx := range txs {
		total += safeAmount(tx.Amount)
	}

	return total
}

// safeAmount guards aggregate sums against records persisted before the
// current coercion rules: non-finite amounts count as 0.
func safeAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}

	return amount
}

func createdAt(tx Transaction) time.Time {
	t, err := time.Parse(time.RFC3339, tx.CreatedAt)
	if err != nil {
		return time.Time{}
	}

	return t
}
