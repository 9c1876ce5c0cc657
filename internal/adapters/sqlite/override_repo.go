// Package sqlite contains SQLite implementations of the secondary ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/runcard/internal/ports/secondary"
)

// OverrideRepository implements secondary.OverrideStore with SQLite.
type OverrideRepository struct {
	db *sql.DB
}

// NewOverrideRepository creates a new SQLite override repository.
func NewOverrideRepository(db *sql.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

// SetStatus upserts a status override for a unit.
func (r *OverrideRepository) SetStatus(ctx context.Context, unitID, status string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO status_overrides (unit_id, status) VALUES (?, ?)
		ON CONFLICT(unit_id) DO UPDATE SET status = excluded.status, updated_at = CURRENT_TIMESTAMP`,
		unitID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to set status override: %w", err)
	}
	return nil
}

// ClearStatus removes a unit's status override. Clearing an absent
// override is not an error.
func (r *OverrideRepository) ClearStatus(ctx context.Context, unitID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM status_overrides WHERE unit_id = ?", unitID); err != nil {
		return fmt.Errorf("failed to clear status override: %w", err)
	}
	return nil
}

// StatusOverrides returns all status overrides.
func (r *OverrideRepository) StatusOverrides(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT unit_id, status FROM status_overrides")
	if err != nil {
		return nil, fmt.Errorf("failed to list status overrides: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var unitID, status string
		if err := rows.Scan(&unitID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan status override: %w", err)
		}
		out[unitID] = status
	}
	return out, rows.Err()
}

// AddCapability records a capability-add override. Adding a token removes
// any standing remove-override for the same token, so the latest edit wins.
func (r *OverrideRepository) AddCapability(ctx context.Context, unitID, token string) error {
	return r.setCapability(ctx, unitID, token, "add", "remove")
}

// RemoveCapability records a capability-remove override.
func (r *OverrideRepository) RemoveCapability(ctx context.Context, unitID, token string) error {
	return r.setCapability(ctx, unitID, token, "remove", "add")
}

func (r *OverrideRepository) setCapability(ctx context.Context, unitID, token, op, inverse string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin capability override: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM capability_overrides WHERE unit_id = ? AND token = ? AND op = ?",
		unitID, token, inverse,
	); err != nil {
		return fmt.Errorf("failed to clear inverse override: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO capability_overrides (unit_id, token, op) VALUES (?, ?, ?)",
		unitID, token, op,
	); err != nil {
		return fmt.Errorf("failed to record capability override: %w", err)
	}
	return tx.Commit()
}

// ClearCapabilities removes all capability overrides for a unit.
func (r *OverrideRepository) ClearCapabilities(ctx context.Context, unitID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM capability_overrides WHERE unit_id = ?", unitID); err != nil {
		return fmt.Errorf("failed to clear capability overrides: %w", err)
	}
	return nil
}

// CapabilityOverrides returns the add and remove override sets.
func (r *OverrideRepository) CapabilityOverrides(ctx context.Context) (map[string][]string, map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT unit_id, token, op FROM capability_overrides ORDER BY id")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list capability overrides: %w", err)
	}
	defer rows.Close()

	added := map[string][]string{}
	removed := map[string][]string{}
	for rows.Next() {
		var unitID, token, op string
		if err := rows.Scan(&unitID, &token, &op); err != nil {
			return nil, nil, fmt.Errorf("failed to scan capability override: %w", err)
		}
		if op == "add" {
			added[unitID] = append(added[unitID], token)
		} else {
			removed[unitID] = append(removed[unitID], token)
		}
	}
	return added, removed, rows.Err()
}

// ClearAll removes every status and capability override.
func (r *OverrideRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM status_overrides"); err != nil {
		return fmt.Errorf("failed to clear status overrides: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM capability_overrides"); err != nil {
		return fmt.Errorf("failed to clear capability overrides: %w", err)
	}
	return nil
}

// Ensure OverrideRepository implements the interface
var _ secondary.OverrideStore = (*OverrideRepository)(nil)
