package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_console_settings.up.sql
var consoleSettingsSQL string

// EnsureSchema creates the console_settings table when it is missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	var exists bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = 'console_settings'
		)
	`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check console_settings table: %w", err)
	}

	if exists {
		return nil
	}

	slog.Info("console_settings missing; applying migration 001")
	if _, err := db.Pool.Exec(ctx, consoleSettingsSQL); err != nil {
		return fmt.Errorf("apply console settings migration: %w", err)
	}

	return nil
}
