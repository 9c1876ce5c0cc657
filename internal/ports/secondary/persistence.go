// Package secondary defines the secondary ports (driven adapters) for the
// application: the interfaces through which it reaches persistence and
// reference data.
package secondary

import (
	"context"

	"github.com/example/runcard/internal/models"
)

// OverrideStore persists live status and capability edits, keyed by unit.
type OverrideStore interface {
	// SetStatus upserts a status override for a unit.
	SetStatus(ctx context.Context, unitID, status string) error

	// ClearStatus removes a unit's status override.
	ClearStatus(ctx context.Context, unitID string) error

	// StatusOverrides returns all status overrides.
	StatusOverrides(ctx context.Context) (map[string]string, error)

	// AddCapability records a capability-add override.
	AddCapability(ctx context.Context, unitID, token string) error

	// RemoveCapability records a capability-remove override.
	RemoveCapability(ctx context.Context, unitID, token string) error

	// ClearCapabilities removes all capability overrides for a unit.
	ClearCapabilities(ctx context.Context, unitID string) error

	// CapabilityOverrides returns the add and remove override sets.
	CapabilityOverrides(ctx context.Context) (added, removed map[string][]string, err error)

	// ClearAll removes every override.
	ClearAll(ctx context.Context) error
}

// SettingsStore persists small key/value settings such as the mutual-aid
// toggle.
type SettingsStore interface {
	// SetBool stores a boolean setting.
	SetBool(ctx context.Context, key string, value bool) error

	// GetBool reads a boolean setting, returning def when unset.
	GetBool(ctx context.Context, key string, def bool) (bool, error)
}

// LogWriter records an audit trail of edits.
type LogWriter interface {
	// LogEdit records one edit against an entity.
	LogEdit(ctx context.Context, entityType, entityID, action, oldValue, newValue string) error
}

// ReferenceDataProvider loads the reference data snapshot.
type ReferenceDataProvider interface {
	// Load reads and canonicalizes the reference tables.
	Load(ctx context.Context) (*models.ReferenceData, error)
}
