package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/storage"
	"github.com/Veraticus/expense-tracker/internal/testutil"
)

// fakeRenderer records what it was asked to draw.
type fakeRenderer struct {
	err    error
	calls  [][]model.CategoryTotal
	report *model.ChartReport
}

func (f *fakeRenderer) RenderCategoryPie(_ context.Context, totals []model.CategoryTotal) (*model.ChartReport, error) {
	f.calls = append(f.calls, totals)
	if f.err != nil {
		return nil, f.err
	}
	if len(totals) == 0 {
		return nil, nil
	}
	return f.report, nil
}

// failingExpenses fails every operation with a persistence error.
type failingExpenses struct{}

func (failingExpenses) Add(context.Context, decimal.Decimal, string, string) (*model.Expense, error) {
	return nil, fmt.Errorf("%w: disk I/O error", common.ErrPersistence)
}

func (failingExpenses) List(context.Context, model.Period) ([]model.Expense, error) {
	return nil, fmt.Errorf("%w: disk I/O error", common.ErrPersistence)
}

func (failingExpenses) TotalsByCategory(context.Context) ([]model.CategoryTotal, error) {
	return nil, fmt.Errorf("%w: disk I/O error", common.ErrPersistence)
}

// failingCategories fails every operation with a persistence error.
type failingCategories struct{}

func (failingCategories) AddIfAbsent(context.Context, string) (model.AddResult, error) {
	return 0, fmt.Errorf("%w: database is locked", common.ErrPersistence)
}

func (failingCategories) ListAll(context.Context) ([]string, error) {
	return nil, fmt.Errorf("%w: database is locked", common.ErrPersistence)
}

type shellFixture struct {
	db         *testutil.TestDB
	expenses   *storage.ExpenseRepository
	categories *storage.CategoryRepository
	renderer   *fakeRenderer
}

func newShellFixture(t *testing.T) *shellFixture {
	t.Helper()

	db := testutil.SetupTestDB(t, nil)
	return &shellFixture{
		db:         db,
		expenses:   db.Expenses,
		categories: db.Categories,
		renderer:   &fakeRenderer{},
	}
}

func (f *shellFixture) run(t *testing.T, input string) string {
	t.Helper()

	var out bytes.Buffer
	shell := NewShell(f.expenses, f.categories, f.renderer, strings.NewReader(input), &out)
	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func TestShell_AddExpense(t *testing.T) {
	t.Run("existing category by number", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\n12.50\n3\nlunch\n5\n")

		assert.Contains(t, out, "Available categories:")
		assert.Contains(t, out, "3. Food")
		assert.Contains(t, out, "Added expense: $12.50 for Food")

		expenses := f.db.MustListAll()
		require.Len(t, expenses, 1)
		assert.True(t, decimal.RequireFromString("12.50").Equal(expenses[0].Amount))
		assert.Equal(t, "Food", expenses[0].Category)
		assert.Equal(t, "lunch", expenses[0].Description)
	})

	t.Run("new category by name", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\n8\nPets\n\n5\n")

		assert.Contains(t, out, "Added new category: Pets")
		assert.Contains(t, out, "Added expense: $8.00 for Pets")

		names, err := f.categories.ListAll(context.Background())
		require.NoError(t, err)
		assert.Contains(t, names, "Pets")

		expenses := f.db.MustListAll()
		require.Len(t, expenses, 1)
		assert.Equal(t, "Pets", expenses[0].Category)
		assert.Empty(t, expenses[0].Description)
	})

	t.Run("out of range number becomes a category", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\n5\n42\n\n5\n")

		assert.Contains(t, out, "Added new category: 42")
		expenses := f.db.MustListAll()
		require.Len(t, expenses, 1)
		assert.Equal(t, "42", expenses[0].Category)
	})

	t.Run("typed name that already exists", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\n5\nFood\n\n5\n")

		assert.Contains(t, out, "Category already exists")
		assert.Contains(t, out, "Added expense: $5.00 for Food")
	})

	t.Run("negative amount is accepted", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\n-3.5\n1\nrefund\n5\n")

		assert.Contains(t, out, "Added expense: $-3.50 for Education")
		require.Len(t, f.db.MustListAll(), 1)
	})

	t.Run("invalid amount aborts the flow", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\nabc\n5\n")

		assert.Contains(t, out, "Invalid input. Please enter a valid amount.")
		assert.NotContains(t, out, "Available categories:")
		assert.Equal(t, 2, strings.Count(out, "Personal Expense Tracker"))
		assert.Empty(t, f.db.MustListAll())
	})

	t.Run("empty category aborts the flow", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\n10\n\n5\n")

		assert.Contains(t, out, "Category cannot be empty.")
		assert.Empty(t, f.db.MustListAll())
	})

	t.Run("store failure is reported and the session continues", func(t *testing.T) {
		f := newShellFixture(t)

		var out bytes.Buffer
		shell := NewShell(failingExpenses{}, f.categories, f.renderer, strings.NewReader("1\n10\n1\n\n7\n5\n"), &out)
		require.NoError(t, shell.Run(context.Background()))

		assert.Contains(t, out.String(), "Error adding expense: storage failure: disk I/O error")
		assert.Contains(t, out.String(), "Invalid choice. Please try again.")
		assert.Contains(t, out.String(), "Goodbye!")
	})

	t.Run("category listing failure aborts the flow", func(t *testing.T) {
		f := newShellFixture(t)

		var out bytes.Buffer
		shell := NewShell(f.expenses, failingCategories{}, f.renderer, strings.NewReader("1\n10\n5\n"), &out)
		require.NoError(t, shell.Run(context.Background()))

		assert.Contains(t, out.String(), "Error loading categories")
		assert.Empty(t, f.db.MustListAll())
	})
}

func TestShell_ViewExpenses(t *testing.T) {
	t.Run("no expenses", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "2\n1\n5\n")

		assert.Contains(t, out, "No expenses found.")
		assert.NotContains(t, out, "Total:")
	})

	t.Run("table with total", func(t *testing.T) {
		f := newShellFixture(t)
		f.db.MustAddExpense("12.50", "Food", "lunch")
		f.db.MustAddExpense("30", "Transportation", "")

		out := f.run(t, "2\n4\n5\n")

		for _, want := range []string{"ID", "Amount", "Category", "Description", "Date", "12.50", "30.00", "lunch", "Transportation", "Total: $42.50"} {
			assert.Contains(t, out, want)
		}
		assert.Less(t, strings.Index(out, "Transportation"), strings.Index(out, "lunch"), "newest first")
	})

	t.Run("today includes a fresh expense", func(t *testing.T) {
		f := newShellFixture(t)
		f.db.MustAddExpense("4", "Food", "coffee")

		out := f.run(t, "2\n1\n5\n")

		assert.Contains(t, out, "coffee")
		assert.Contains(t, out, "Total: $4.00")
	})

	t.Run("unrecognised period means all time", func(t *testing.T) {
		f := newShellFixture(t)
		f.db.MustAddExpense("9.99", "Shopping", "socks")

		out := f.run(t, "2\nyesterday\n5\n")

		assert.Contains(t, out, "socks")
		assert.Contains(t, out, "Total: $9.99")
	})

	t.Run("store failure", func(t *testing.T) {
		f := newShellFixture(t)

		var out bytes.Buffer
		shell := NewShell(failingExpenses{}, f.categories, f.renderer, strings.NewReader("2\n4\n5\n"), &out)
		require.NoError(t, shell.Run(context.Background()))

		assert.Contains(t, out.String(), "Error loading expenses")
	})
}

func TestShell_Report(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "3\n5\n")

		assert.Contains(t, out, "No spending data available.")
		require.Len(t, f.renderer.calls, 1)
		assert.Empty(t, f.renderer.calls[0])
	})

	t.Run("renders totals", func(t *testing.T) {
		f := newShellFixture(t)
		f.db.MustAddExpense("12.50", "Food", "lunch")
		f.db.MustAddExpense("30", "Transportation", "")

		f.renderer.report = &model.ChartReport{
			Path: "/tmp/spending.png",
			Slices: []model.ChartSlice{
				{Category: "Transportation", Amount: decimal.RequireFromString("30"), Percent: decimal.RequireFromString("70.588")},
				{Category: "Food", Amount: decimal.RequireFromString("12.5"), Percent: decimal.RequireFromString("29.412")},
			},
		}

		out := f.run(t, "3\n5\n")

		require.Len(t, f.renderer.calls, 1)
		totals := f.renderer.calls[0]
		require.Len(t, totals, 2)
		assert.Equal(t, "Transportation", totals[0].Category)
		assert.Equal(t, "Food", totals[1].Category)

		assert.Contains(t, out, "70.6%")
		assert.Contains(t, out, "29.4%")
		assert.Contains(t, out, "Chart saved to /tmp/spending.png")
		assert.Contains(t, out, "Open it with any image viewer.")
	})

	t.Run("renderer failure", func(t *testing.T) {
		f := newShellFixture(t)
		f.db.MustAddExpense("1", "Food", "")
		f.renderer.err = fmt.Errorf("failed to create chart file: permission denied")

		out := f.run(t, "3\n5\n")

		assert.Contains(t, out, "Error generating report: failed to create chart file: permission denied")
	})
}

func TestShell_AddCategory(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{name: "new category", input: "4\nPets\n5\n", want: "Added new category: Pets", wantCount: 10},
		{name: "duplicate", input: "4\nFood\n5\n", want: "Category already exists", wantCount: 9},
		{name: "trimmed name", input: "4\n  Travel  \n5\n", want: "Added new category: Travel", wantCount: 10},
		{name: "empty name", input: "4\n\n5\n", want: "Category name cannot be empty.", wantCount: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newShellFixture(t)

			out := f.run(t, tt.input)

			assert.Contains(t, out, tt.want)
			names, err := f.categories.ListAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, names, tt.wantCount)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		f := newShellFixture(t)

		var out bytes.Buffer
		shell := NewShell(f.expenses, failingCategories{}, f.renderer, strings.NewReader("4\nPets\n5\n"), &out)
		require.NoError(t, shell.Run(context.Background()))

		assert.Contains(t, out.String(), "Error adding category: storage failure: database is locked")
	})
}

func TestShell_MenuLifecycle(t *testing.T) {
	t.Run("invalid choice redisplays the menu", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "7\n\nhello\n5\n")

		assert.Equal(t, 3, strings.Count(out, "Invalid choice. Please try again."))
		assert.Equal(t, 4, strings.Count(out, "Personal Expense Tracker"))
		assert.Contains(t, out, "Goodbye!")
	})

	t.Run("end of input exits cleanly", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "")

		assert.Contains(t, out, "Goodbye!")
	})

	t.Run("end of input mid flow exits cleanly", func(t *testing.T) {
		f := newShellFixture(t)

		out := f.run(t, "1\n12\n")

		assert.Contains(t, out, "Goodbye!")
		assert.Empty(t, f.db.MustListAll())
	})

	t.Run("canceled context exits cleanly", func(t *testing.T) {
		f := newShellFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		shell := NewShell(f.expenses, f.categories, f.renderer, strings.NewReader("1\n"), &out)
		require.NoError(t, shell.Run(ctx))
		assert.Equal(t, 1, strings.Count(out.String(), "Goodbye!"))
	})
}

func TestShell_FreeTextAnswers(t *testing.T) {
	t.Run("description stored as typed", func(t *testing.T) {
		f := newShellFixture(t)

		f.run(t, "1\n 12.50 \n 3 \n  lunch with  \n5\n")

		expenses := f.db.MustListAll()
		require.Len(t, expenses, 1)
		assert.Equal(t, "Food", expenses[0].Category)
		assert.Equal(t, "  lunch with  ", expenses[0].Description)
	})

	t.Run("very long description keeps the session going", func(t *testing.T) {
		f := newShellFixture(t)
		long := strings.Repeat("x", 70*1024)

		out := f.run(t, "1\n12.50\n1\n"+long+"\n2\n4\n5\n")

		expenses := f.db.MustListAll()
		require.Len(t, expenses, 1)
		assert.Len(t, expenses[0].Description, len(long))
		assert.Contains(t, out, "Total: $12.50")
		assert.Contains(t, out, "Goodbye!")
	})
}

func TestWriteReport_Opened(t *testing.T) {
	var out bytes.Buffer
	WriteReport(&out, &model.ChartReport{
		Path:   "chart.png",
		Opened: true,
		Slices: []model.ChartSlice{{Category: "Food", Amount: decimal.NewFromInt(5), Percent: decimal.NewFromInt(100)}},
	})

	assert.Contains(t, out.String(), "Spending by Category")
	assert.Contains(t, out.String(), "100.0%")
	assert.NotContains(t, out.String(), "Open it with any image viewer.")
}
