package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
)

// SQLiteStorage owns the single database handle shared by the repositories.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, persistenceError("failed to create database directory", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, persistenceError("failed to open database", err)
	}

	// One connection for the lifetime of the process
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, persistenceError("failed to ping database", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Initialize brings the schema up to date and seeds the default categories
// when the category set is empty. It is safe to call on every startup.
func (s *SQLiteStorage) Initialize(ctx context.Context) error {
	if err := s.Migrate(ctx); err != nil {
		return err
	}
	return s.seedDefaultCategories(ctx)
}

func (s *SQLiteStorage) seedDefaultCategories(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return persistenceError("failed to count categories", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO categories (name) VALUES (?)")
	if err != nil {
		return persistenceError("failed to prepare category insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, name := range model.DefaultCategories {
		if _, err := stmt.ExecContext(ctx, name); err != nil {
			return persistenceError(fmt.Sprintf("failed to seed category %q", name), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persistenceError("failed to commit default categories", err)
	}

	slog.Info("seeded default categories", "count", len(model.DefaultCategories))
	return nil
}

// persistenceError wraps a store failure so callers can match ErrPersistence.
func persistenceError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrPersistence, msg, err)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
