package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/runcard/internal/ports/secondary"
)

// EditLogWriter implements secondary.LogWriter using the edit_log table.
type EditLogWriter struct {
	db *sql.DB
}

// NewEditLogWriter creates a new SQLite edit log writer.
func NewEditLogWriter(db *sql.DB) *EditLogWriter {
	return &EditLogWriter{db: db}
}

// LogEdit records one edit against an entity.
func (w *EditLogWriter) LogEdit(ctx context.Context, entityType, entityID, action, oldValue, newValue string) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO edit_log (entity_type, entity_id, action, old_value, new_value) VALUES (?, ?, ?, ?, ?)",
		entityType, entityID, action, oldValue, newValue,
	)
	if err != nil {
		return fmt.Errorf("failed to write edit log: %w", err)
	}
	return nil
}

// Ensure EditLogWriter implements the interface
var _ secondary.LogWriter = (*EditLogWriter)(nil)
