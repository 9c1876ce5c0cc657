package db

import "fmt"

// SchemaSQL is the complete schema for fresh runcard installs. It is the
// single source of truth: tests build their in-memory databases from
// GetSchemaSQL so repository code and schema cannot drift silently.
//
// The reference tables (run cards, plans, rosters) live in the data file,
// not here; the database holds only the editable state layered on top.
const SchemaSQL = `
-- Live status overrides (unit id -> status token)
CREATE TABLE IF NOT EXISTS status_overrides (
	unit_id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Capability overrides (add/remove per unit and token)
CREATE TABLE IF NOT EXISTS capability_overrides (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	unit_id TEXT NOT NULL,
	token TEXT NOT NULL,
	op TEXT NOT NULL CHECK(op IN ('add', 'remove')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(unit_id, token, op)
);

-- Small key/value settings (mutual aid toggle)
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Audit trail of edits
CREATE TABLE IF NOT EXISTS edit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_capability_overrides_unit ON capability_overrides(unit_id);
CREATE INDEX IF NOT EXISTS idx_edit_log_entity ON edit_log(entity_type, entity_id);
`

// GetSchemaSQL returns the schema for test databases.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables on the shared connection.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
