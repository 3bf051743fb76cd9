// Package memory is an in-process Repository used for development and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	budgets      []core.Budget
}

var _ storage.Repository = (*Store)(nil)

func New() *Store {
	return &Store{}
}

type seedFile struct {
	Transactions []struct {
		Amount      core.Money `json:"amount"`
		Date        string     `json:"date"`
		Category    string     `json:"category"`
		Description string     `json:"description"`
	} `json:"transactions"`
	Budgets []struct {
		Category string     `json:"category"`
		Amount   core.Money `json:"amount"`
		Month    int        `json:"month"`
		Year     int        `json:"year"`
	} `json:"budgets"`
}

// NewFromFile seeds a store from a JSON file with "transactions" and
// "budgets" arrays. Dates are YYYY-MM-DD. A missing file yields an empty store.
func NewFromFile(path string) (*Store, error) {
	s := New()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	ctx := context.Background()
	for i, st := range seed.Transactions {
		date, err := time.Parse(time.DateOnly, st.Date)
		if err != nil {
			return nil, fmt.Errorf("seed transaction %d: %w", i, core.ErrInvalidDate)
		}
		if _, err := s.CreateTransaction(ctx, core.Transaction{
			Amount:      st.Amount,
			Date:        date,
			Category:    st.Category,
			Description: st.Description,
		}); err != nil {
			return nil, fmt.Errorf("seed transaction %d: %w", i, err)
		}
	}
	for i, sb := range seed.Budgets {
		if _, _, err := s.UpsertBudget(ctx, core.Budget{
			Category: sb.Category,
			Amount:   sb.Amount,
			Month:    sb.Month,
			Year:     sb.Year,
		}); err != nil {
			return nil, fmt.Errorf("seed budget %d: %w", i, err)
		}
	}
	return s, nil
}

func (s *Store) Close() error { return nil }

// ListTransactions returns a copy, newest first.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.transactions...)
	storage.SortTransactions(out)
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactionIndex(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	return s.transactions[i], nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactionIndex(t.ID)
	if i < 0 {
		return fmt.Errorf("transaction %s: %w", t.ID, storage.ErrNotFound)
	}
	s.transactions[i] = t
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactionIndex(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	t := s.transactions[i]
	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
	return t, nil
}

// ListBudgets returns a copy, latest period first.
func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Budget(nil), s.budgets...)
	storage.SortBudgets(out)
	return out, nil
}

func (s *Store) UpsertBudget(_ context.Context, b core.Budget) (core.Budget, bool, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.budgets {
		if existing.Category == b.Category && existing.Month == b.Month && existing.Year == b.Year {
			b.ID = existing.ID
			s.budgets[i] = b
			return b, false, nil
		}
	}
	b.ID = uuid.NewString()
	s.budgets = append(s.budgets, b)
	return b, true, nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return b, nil
		}
	}
	return core.Budget{}, fmt.Errorf("budget %s: %w", id, storage.ErrNotFound)
}

func (s *Store) transactionIndex(id string) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}
