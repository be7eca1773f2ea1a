// Package testutil provides shared fixtures for tests that need a real
// expense database.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

// TestDB is an initialized database in a temp dir with its repositories.
type TestDB struct {
	Storage    *storage.SQLiteStorage
	Expenses   *storage.ExpenseRepository
	Categories *storage.CategoryRepository
	t          *testing.T
}

// SetupTestDB creates a seeded database that is closed when the test ends.
// A nil clock stamps expenses with the system time.
func SetupTestDB(t *testing.T, clock common.Clock) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	return &TestDB{
		Storage:    store,
		Expenses:   storage.NewExpenseRepository(store, clock),
		Categories: storage.NewCategoryRepository(store),
		t:          t,
	}
}

// MustAddExpense records an expense or fails the test.
func (db *TestDB) MustAddExpense(amount, category, description string) *model.Expense {
	db.t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		db.t.Fatalf("bad amount %q: %v", amount, err)
	}

	expense, err := db.Expenses.Add(context.Background(), value, category, description)
	if err != nil {
		db.t.Fatalf("failed to add expense: %v", err)
	}
	return expense
}

// MustListAll returns every expense, newest first, or fails the test.
func (db *TestDB) MustListAll() []model.Expense {
	db.t.Helper()

	expenses, err := db.Expenses.List(context.Background(), model.PeriodAll)
	if err != nil {
		db.t.Fatalf("failed to list expenses: %v", err)
	}
	return expenses
}
