// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// ExpenseRepository records expenses and answers read-side queries.
type ExpenseRepository interface {
	Add(ctx context.Context, amount decimal.Decimal, category, description string) (*model.Expense, error)
	List(ctx context.Context, period model.Period) ([]model.Expense, error)
	TotalsByCategory(ctx context.Context) ([]model.CategoryTotal, error)
}

// CategoryRepository registers and lists category names.
type CategoryRepository interface {
	AddIfAbsent(ctx context.Context, name string) (model.AddResult, error)
	ListAll(ctx context.Context) ([]string, error)
}

// ReportRenderer turns category totals into a chart. A nil report with a nil
// error means there was nothing to draw.
type ReportRenderer interface {
	RenderCategoryPie(ctx context.Context, totals []model.CategoryTotal) (*model.ChartReport, error)
}
