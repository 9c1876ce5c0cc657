package primary

import "context"

// StatusService defines the primary port for status and capability edits.
// Every status edit re-resolves cross-staffing coercion eagerly so the
// status display stays consistent.
type StatusService interface {
	// SetStatus records a live status override for a unit.
	SetStatus(ctx context.Context, unitID, status string) error

	// ClearStatus removes a unit's status override.
	ClearStatus(ctx context.Context, unitID string) error

	// AddCapability records a capability-add override for a unit.
	AddCapability(ctx context.Context, unitID, token string) error

	// RemoveCapability records a capability-remove override for a unit.
	RemoveCapability(ctx context.Context, unitID, token string) error

	// ClearOverrides removes all capability overrides for a unit.
	ClearOverrides(ctx context.Context, unitID string) error

	// SetMutualAid toggles drawing units from non-home-agency stations.
	SetMutualAid(ctx context.Context, enabled bool) error

	// MutualAid reports whether mutual aid is enabled.
	MutualAid(ctx context.Context) (bool, error)

	// ListStatusOverrides returns all live status overrides.
	ListStatusOverrides(ctx context.Context) (map[string]string, error)

	// ListCapabilityOverrides returns the capability add and remove sets.
	ListCapabilityOverrides(ctx context.Context) (added, removed map[string][]string, err error)

	// ResetAll clears every status and capability override.
	ResetAll(ctx context.Context) error
}
