package transaction_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tallyhq/tally/internal/kv/memkv"
	"github.com/tallyhq/tally/internal/transaction"
	"github.com/tallyhq/tally/internal/transaction/store"
)

// steppingClock returns a clock that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	t := start

	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestService(opts ...transaction.Option) *transaction.Service {
	return transaction.NewService(store.New(memkv.New()), opts...)
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		candidate transaction.Candidate
		setupMock func(m *transaction.MockRepository)
		check     func(t *testing.T, tx transaction.Transaction)
	}

	tests := []testCase{
		{
			name: "Success",
			candidate: transaction.Candidate{
				Type:        "expense",
				Description: "Coffee",
				Amount:      4.5,
				Category:    "food",
				Date:        "2024-01-15",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Load().Return(nil, nil)
				m.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(txs []transaction.Transaction) error {
						require.Len(t, txs, 1)
						return nil
					})
			},
			check: func(t *testing.T, tx transaction.Transaction) {
				assert.NotEmpty(t, tx.ID)
				assert.NotEmpty(t, tx.CreatedAt)
				assert.Equal(t, transaction.TypeExpense, tx.Type)
				assert.Equal(t, 4.5, tx.Amount)
				assert.Equal(t, "food", tx.Category)
				assert.Equal(t, "2024-01-15", tx.Date)
			},
		},
		{
			name: "SaveFailureStillReturnsRecord",
			candidate: transaction.Candidate{
				Description: "Lunch",
				Amount:      12.0,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Load().Return(nil, nil)
				m.EXPECT().Save(gomock.Any()).Return(errors.New("quota exceeded"))
			},
			check: func(t *testing.T, tx transaction.Transaction) {
				assert.NotEmpty(t, tx.ID)
				assert.Equal(t, "Lunch", tx.Description)
				assert.Equal(t, 12.0, tx.Amount)
			},
		},
		{
			name: "LoadFailureDegradesToEmpty",
			candidate: transaction.Candidate{
				Description: "Snack",
				Amount:      2.0,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Load().Return(nil, errors.New("read error"))
				m.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(txs []transaction.Transaction) error {
						require.Len(t, txs, 1)
						return nil
					})
			},
			check: func(t *testing.T, tx transaction.Transaction) {
				assert.NotEmpty(t, tx.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got := svc.Add(tt.candidate)

			tt.check(t, got)
		})
	}
}

func TestService_Add_Normalization(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(transaction.WithClock(func() time.Time { return now }))

	tx := svc.Add(transaction.Candidate{
		Type:        "transfer",
		Description: "  Mystery  ",
		Amount:      "abc",
		Date:        "not-a-date",
	})

	assert.Equal(t, transaction.TypeExpense, tx.Type)
	assert.Equal(t, "Mystery", tx.Description)
	assert.Zero(t, tx.Amount)
	assert.Equal(t, "other", tx.Category)
	assert.Equal(t, "2024-03-10", tx.Date)
	assert.Equal(t, now.Format(time.RFC3339), tx.CreatedAt)

	// The normalized record is what gets persisted.
	all := svc.All()
	require.Len(t, all, 1)
	assert.Equal(t, tx, all[0])
}

func TestService_Add_GrowsCollection(t *testing.T) {
	svc := newTestService()

	before := len(svc.All())
	first := svc.Add(transaction.Candidate{Description: "One", Amount: 1.0})
	second := svc.Add(transaction.Candidate{Description: "Two", Amount: 2.0})

	all := svc.All()
	assert.Len(t, all, before+2)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestService_Delete_Idempotent(t *testing.T) {
	svc := newTestService()

	keep := svc.Add(transaction.Candidate{Description: "Keep", Amount: 1.0})
	drop := svc.Add(transaction.Candidate{Description: "Drop", Amount: 2.0})

	once := svc.Delete(drop.ID)
	twice := svc.Delete(drop.ID)

	assert.Equal(t, once, twice)
	require.Len(t, twice, 1)
	assert.Equal(t, keep.ID, twice[0].ID)
}

func TestService_Delete_AbsentID(t *testing.T) {
	svc := newTestService()
	svc.Add(transaction.Candidate{Description: "Only", Amount: 1.0})

	result := svc.Delete("no-such-id")
	assert.Len(t, result, 1)
}

func TestService_ClearAll(t *testing.T) {
	svc := newTestService()

	svc.Add(transaction.Candidate{Description: "A", Amount: 1.0})
	svc.Add(transaction.Candidate{Description: "B", Amount: 2.0})

	svc.ClearAll()
	assert.Empty(t, svc.All())

	// Clearing an empty collection is fine too.
	svc.ClearAll()
	assert.Empty(t, svc.All())
}

func TestService_ClearAll_RepoFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Clear().Return(errors.New("io error"))

	svc := transaction.NewService(repo)

	assert.NotPanics(t, func() { svc.ClearAll() })
}

func TestService_Totals(t *testing.T) {
	svc := newTestService()

	assert.Zero(t, svc.Balance())

	svc.Add(transaction.Candidate{Type: "income", Description: "Salary", Amount: 3000.0, Category: "salary"})
	svc.Add(transaction.Candidate{Description: "Coffee", Amount: 4.5, Category: "food"})
	svc.Add(transaction.Candidate{Description: "Groceries", Amount: 60.25, Category: "food"})

	assert.InDelta(t, 3000.0, svc.TotalIncome(), 1e-9)
	assert.InDelta(t, 64.75, svc.TotalExpenses(), 1e-9)
	assert.InDelta(t, svc.TotalIncome()-svc.TotalExpenses(), svc.Balance(), 1e-9)
}

func TestService_SpendingByCategory(t *testing.T) {
	svc := newTestService()

	svc.Add(transaction.Candidate{Description: "Coffee", Amount: 4.5, Category: "food"})
	svc.Add(transaction.Candidate{Description: "Groceries", Amount: 20.0, Category: "food"})
	svc.Add(transaction.Candidate{Description: "Bus", Amount: 2.75, Category: "transport"})
	svc.Add(transaction.Candidate{Type: "income", Description: "Salary", Amount: 3000.0, Category: "salary"})

	spending := svc.SpendingByCategory()

	assert.InDelta(t, 24.5, spending["food"], 1e-9)
	assert.InDelta(t, 2.75, spending["transport"], 1e-9)

	// Income never contributes; categories without expenses are absent.
	assert.NotContains(t, spending, "salary")
	assert.NotContains(t, spending, "bills")
}

func TestService_ByTypeAndCategory(t *testing.T) {
	svc := newTestService()

	svc.Add(transaction.Candidate{Type: "income", Description: "Salary", Amount: 100.0, Category: "salary"})
	svc.Add(transaction.Candidate{Description: "Coffee", Amount: 4.5, Category: "food"})

	assert.Len(t, svc.ByType(transaction.TypeIncome), 1)
	assert.Len(t, svc.ByType(transaction.TypeExpense), 1)
	assert.Len(t, svc.ByCategory("food"), 1)
	assert.Empty(t, svc.ByCategory("bills"))
}

func TestService_Recent(t *testing.T) {
	svc := newTestService(transaction.WithClock(steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	for _, desc := range []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh"} {
		svc.Add(transaction.Candidate{Description: desc, Amount: 1.0, Date: "2024-01-01"})
	}

	recent := svc.Recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, "Seventh", recent[0].Description)
	assert.Equal(t, "Sixth", recent[1].Description)
	assert.Equal(t, "Fifth", recent[2].Description)

	// Default limit is 5.
	assert.Len(t, svc.Recent(0), 5)

	// Recent is a subset of All.
	all := svc.All()
	for _, tx := range recent {
		assert.Contains(t, all, tx)
	}
}

func TestService_Subscribe(t *testing.T) {
	svc := newTestService()

	var notified int

	unsubscribe := svc.Subscribe(func() { notified++ })

	svc.Add(transaction.Candidate{Description: "A", Amount: 1.0})
	tx := svc.Add(transaction.Candidate{Description: "B", Amount: 2.0})
	svc.Delete(tx.ID)
	svc.ClearAll()

	assert.Equal(t, 4, notified)

	unsubscribe()
	svc.Add(transaction.Candidate{Description: "C", Amount: 3.0})

	assert.Equal(t, 4, notified)
}
