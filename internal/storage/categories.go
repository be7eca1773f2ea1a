package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// CategoryRepository registers and lists category names.
type CategoryRepository struct {
	store *SQLiteStorage
}

// NewCategoryRepository creates a repository over store.
func NewCategoryRepository(store *SQLiteStorage) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// AddIfAbsent inserts name. A name that is already registered yields
// CategoryExists and a nil error.
func (r *CategoryRepository) AddIfAbsent(ctx context.Context, name string) (model.AddResult, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}

	result, err := r.store.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			slog.Debug("category already exists", "name", name)
			return model.CategoryExists, nil
		}
		return 0, persistenceError(fmt.Sprintf("failed to create category %q", name), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistenceError("failed to get category ID", err)
	}

	slog.Info("created new category", "name", name, "id", id)
	return model.CategoryAdded, nil
}

// ListAll returns every category name in ascending order.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]string, error) {
	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}
	return names, nil
}

// Categories returns every category with its ID, ordered by name.
func (r *CategoryRepository) Categories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := r.store.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, persistenceError("failed to query categories", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, persistenceError("failed to scan category", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError("error iterating categories", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}
