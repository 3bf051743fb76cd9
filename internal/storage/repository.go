package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// Dates keep their offset so the calendar month survives a round trip.
const dateLayout = time.RFC3339

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s rowScanner) (core.Transaction, error) {
	var (
		t    core.Transaction
		date string
	)
	if err := s.Scan(&t.ID, &t.Amount.Cents, &date, &t.Category, &t.Description); err != nil {
		return core.Transaction{}, err
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date of transaction %s: %w", t.ID, err)
	}
	t.Date = parsed
	return t, nil
}

func scanBudget(s rowScanner) (core.Budget, error) {
	var b core.Budget
	if err := s.Scan(&b.ID, &b.Category, &b.Amount.Cents, &b.Month, &b.Year); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

// ListTransactions implements TransactionReader
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, occurred_at, category, description FROM transactions ORDER BY occurred_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	// Stored strings may carry different offsets
	SortTransactions(out)
	return out, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, occurred_at, category, description FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, amount_cents, occurred_at, category, description) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Amount.Cents, t.Date.Format(dateLayout), t.Category, t.Description)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"amount_cents", t.Amount.Cents,
		"category", t.Category,
		"date", t.Date.Format(time.DateOnly))

	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		    SET amount_cents = ?, occurred_at = ?, category = ?, description = ?,
		        updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		  WHERE id = ?`,
		t.Amount.Cents, t.Date.Format(dateLayout), t.Category, t.Description, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if err := requireAffected(res, "transaction", t.ID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID)
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) (core.Transaction, error) {
	t, err := r.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("delete transaction: %w", err)
	}
	if err := requireAffected(res, "transaction", id); err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return t, nil
}

// ListBudgets implements BudgetReader
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, amount_cents, month, year FROM budgets ORDER BY year DESC, month DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, bool, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, false, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Budget{}, false, fmt.Errorf("begin upsert budget: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanBudget(tx.QueryRowContext(ctx,
		`SELECT id, category, amount_cents, month, year FROM budgets WHERE category = ? AND month = ? AND year = ?`,
		b.Category, b.Month, b.Year))
	created := false
	switch {
	case errors.Is(err, sql.ErrNoRows):
		created = true
		b.ID = uuid.NewString()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO budgets (id, category, amount_cents, month, year) VALUES (?, ?, ?, ?, ?)`,
			b.ID, b.Category, b.Amount.Cents, b.Month, b.Year)
		if err != nil {
			return core.Budget{}, false, fmt.Errorf("insert budget: %w", err)
		}
	case err != nil:
		return core.Budget{}, false, fmt.Errorf("lookup budget: %w", err)
	default:
		b.ID = existing.ID
		_, err = tx.ExecContext(ctx,
			`UPDATE budgets SET amount_cents = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now') WHERE id = ?`,
			b.Amount.Cents, b.ID)
		if err != nil {
			return core.Budget{}, false, fmt.Errorf("update budget: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.Budget{}, false, fmt.Errorf("commit upsert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved to SQLite",
		"id", b.ID,
		"category", b.Category,
		"amount_cents", b.Amount.Cents,
		"month", b.Month,
		"year", b.Year,
		"created", created)

	return b, created, nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) (core.Budget, error) {
	b, err := scanBudget(r.db.QueryRowContext(ctx,
		`SELECT id, category, amount_cents, month, year FROM budgets WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, fmt.Errorf("budget %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return core.Budget{}, fmt.Errorf("delete budget: %w", err)
	}
	if err := requireAffected(res, "budget", id); err != nil {
		return core.Budget{}, err
	}

	slog.InfoContext(ctx, "Budget deleted", "id", id)
	return b, nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

// SortTransactions orders txs newest first; equal dates keep id order.
func SortTransactions(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})
}

// SortBudgets orders budgets by year then month descending, then category.
func SortBudgets(bs []core.Budget) {
	sort.SliceStable(bs, func(i, j int) bool {
		if bs[i].Year != bs[j].Year {
			return bs[i].Year > bs[j].Year
		}
		if bs[i].Month != bs[j].Month {
			return bs[i].Month > bs[j].Month
		}
		return bs[i].Category < bs[j].Category
	})
}
