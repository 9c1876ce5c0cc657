package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/runcard/internal/ports/secondary"
)

// SettingsRepository implements secondary.SettingsStore with SQLite.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SQLite settings repository.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// SetBool stores a boolean setting.
func (r *SettingsRepository) SetBool(ctx context.Context, key string, value bool) error {
	stored := "false"
	if value {
		stored = "true"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, stored,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// GetBool reads a boolean setting, returning def when unset.
func (r *SettingsRepository) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value == "true", nil
}

// Ensure SettingsRepository implements the interface
var _ secondary.SettingsStore = (*SettingsRepository)(nil)
