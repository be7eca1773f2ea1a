package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
)

// ExpenseRepository records and queries rows of the expenses table.
type ExpenseRepository struct {
	store *SQLiteStorage
	clock common.Clock
}

// NewExpenseRepository creates a repository over store. A nil clock uses the
// system clock.
func NewExpenseRepository(store *SQLiteStorage, clock common.Clock) *ExpenseRepository {
	if clock == nil {
		clock = common.SystemClock{}
	}
	return &ExpenseRepository{store: store, clock: clock}
}

// Add stamps the current time and inserts a new expense. Neither the sign of
// amount nor the existence of category is checked.
func (r *ExpenseRepository) Add(ctx context.Context, amount decimal.Decimal, category, description string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	date := now.Format(model.DateLayout)

	result, err := r.store.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, category, description, date) VALUES (?, ?, ?, ?)`,
		amount.InexactFloat64(), category, description, date)
	if err != nil {
		return nil, persistenceError("failed to insert expense", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistenceError("failed to get expense ID", err)
	}

	stamped, err := time.ParseInLocation(model.DateLayout, date, now.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense date %q: %w", date, err)
	}

	slog.Debug("added expense", "id", id, "amount", amount.String(), "category", category)

	return &model.Expense{
		ID:          id,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        stamped,
	}, nil
}

// List returns the expenses inside period, newest first.
func (r *ExpenseRepository) List(ctx context.Context, period model.Period) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	now := r.clock.Now()
	start, bounded := period.Window(now)

	var (
		rows *sql.Rows
		err  error
	)
	if bounded {
		rows, err = r.store.db.QueryContext(ctx, `
			SELECT id, amount, category, description, date
			FROM expenses
			WHERE date BETWEEN ? AND ?
			ORDER BY date DESC, id DESC`,
			start.Format(model.DateLayout), now.Format(model.DateLayout))
	} else {
		rows, err = r.store.db.QueryContext(ctx, `
			SELECT id, amount, category, description, date
			FROM expenses
			ORDER BY date DESC, id DESC`)
	}
	if err != nil {
		return nil, persistenceError("failed to query expenses", err)
	}
	defer func() { _ = rows.Close() }()

	expenses := make([]model.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows, now.Location())
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError("error iterating expenses", err)
	}

	slog.Debug("listed expenses", "period", period, "count", len(expenses))
	return expenses, nil
}

// TotalsByCategory sums every expense per category, largest total first.
// Amounts are summed as decimals so totals match the listed rows exactly.
func (r *ExpenseRepository) TotalsByCategory(ctx context.Context) ([]model.CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := r.store.db.QueryContext(ctx, `SELECT category, amount FROM expenses ORDER BY id`)
	if err != nil {
		return nil, persistenceError("failed to query category totals", err)
	}
	defer func() { _ = rows.Close() }()

	index := make(map[string]int)
	totals := make([]model.CategoryTotal, 0)
	for rows.Next() {
		var (
			category string
			amount   float64
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, persistenceError("failed to scan category total", err)
		}

		i, ok := index[category]
		if !ok {
			i = len(totals)
			index[category] = i
			totals = append(totals, model.CategoryTotal{Category: category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(decimal.NewFromFloat(amount))
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError("error iterating category totals", err)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})

	return totals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner, loc *time.Location) (model.Expense, error) {
	var (
		expense     model.Expense
		amount      float64
		description sql.NullString
		date        string
	)
	if err := row.Scan(&expense.ID, &amount, &expense.Category, &description, &date); err != nil {
		return model.Expense{}, persistenceError("failed to scan expense", err)
	}

	parsed, err := time.ParseInLocation(model.DateLayout, date, loc)
	if err != nil {
		return model.Expense{}, persistenceError(fmt.Sprintf("invalid date %q on expense %d", date, expense.ID), err)
	}

	expense.Amount = decimal.NewFromFloat(amount)
	expense.Description = description.String
	expense.Date = parsed
	return expense, nil
}
