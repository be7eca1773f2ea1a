package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrBackupExists is returned when the backup destination is already taken.
var ErrBackupExists = errors.New("backup destination already exists")

// Backup writes a consistent copy of the database to destPath and checks
// the copy's integrity. An existing file at destPath is never overwritten.
func (s *SQLiteStorage) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(destPath, "destPath"); err != nil {
		return err
	}

	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, destPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return persistenceError("failed to check backup destination", err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return persistenceError("failed to create backup directory", err)
	}

	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", destPath); err != nil {
		return persistenceError("failed to back up database", err)
	}

	if err := verifyIntegrity(ctx, destPath); err != nil {
		return persistenceError("backup failed verification", err)
	}

	slog.Info("backed up database", "source", s.dbPath, "destination", destPath)
	return nil
}

func verifyIntegrity(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}

	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	return nil
}
