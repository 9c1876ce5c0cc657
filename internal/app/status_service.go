package app

import (
	"context"
	"fmt"

	"github.com/example/runcard/internal/core/dispatch"
	"github.com/example/runcard/internal/models"
	"github.com/example/runcard/internal/ports/primary"
	"github.com/example/runcard/internal/ports/secondary"
)

// StatusServiceImpl implements the StatusService interface.
type StatusServiceImpl struct {
	data      *models.ReferenceData
	overrides secondary.OverrideStore
	settings  secondary.SettingsStore
	logWriter secondary.LogWriter
}

// NewStatusService creates a new StatusService with injected dependencies.
// logWriter is optional - if nil, no audit logging is performed.
func NewStatusService(
	data *models.ReferenceData,
	overrides secondary.OverrideStore,
	settings secondary.SettingsStore,
	logWriter secondary.LogWriter,
) *StatusServiceImpl {
	return &StatusServiceImpl{
		data:      data,
		overrides: overrides,
		settings:  settings,
		logWriter: logWriter,
	}
}

// SetStatus records a live status override for a unit and eagerly
// re-resolves cross-staffing coercion across its group.
func (s *StatusServiceImpl) SetStatus(ctx context.Context, unitID, status string) error {
	if err := s.requireUnit(unitID); err != nil {
		return err
	}
	token := dispatch.NormalizeToken(status)
	if token == "" {
		return fmt.Errorf("status for %s must not be empty", unitID)
	}

	old := s.currentStatus(ctx, unitID)
	if err := s.overrides.SetStatus(ctx, unitID, token); err != nil {
		return err
	}
	s.logEdit(ctx, "unit", unitID, "status", old, token)
	return s.resyncCrossStaffing(ctx)
}

// ClearStatus removes a unit's status override.
func (s *StatusServiceImpl) ClearStatus(ctx context.Context, unitID string) error {
	if err := s.requireUnit(unitID); err != nil {
		return err
	}
	old := s.currentStatus(ctx, unitID)
	if err := s.overrides.ClearStatus(ctx, unitID); err != nil {
		return err
	}
	s.logEdit(ctx, "unit", unitID, "status-clear", old, "")
	return s.resyncCrossStaffing(ctx)
}

// AddCapability records a capability-add override for a unit.
func (s *StatusServiceImpl) AddCapability(ctx context.Context, unitID, token string) error {
	if err := s.requireUnit(unitID); err != nil {
		return err
	}
	normalized := dispatch.NormalizeToken(token)
	if normalized == "" {
		return fmt.Errorf("capability token for %s must not be empty", unitID)
	}
	if err := s.overrides.AddCapability(ctx, unitID, normalized); err != nil {
		return err
	}
	s.logEdit(ctx, "unit", unitID, "capability-add", "", normalized)
	return nil
}

// RemoveCapability records a capability-remove override for a unit.
func (s *StatusServiceImpl) RemoveCapability(ctx context.Context, unitID, token string) error {
	if err := s.requireUnit(unitID); err != nil {
		return err
	}
	normalized := dispatch.NormalizeToken(token)
	if normalized == "" {
		return fmt.Errorf("capability token for %s must not be empty", unitID)
	}
	if err := s.overrides.RemoveCapability(ctx, unitID, normalized); err != nil {
		return err
	}
	s.logEdit(ctx, "unit", unitID, "capability-remove", normalized, "")
	return nil
}

// ClearOverrides removes all capability overrides for a unit.
func (s *StatusServiceImpl) ClearOverrides(ctx context.Context, unitID string) error {
	if err := s.requireUnit(unitID); err != nil {
		return err
	}
	if err := s.overrides.ClearCapabilities(ctx, unitID); err != nil {
		return err
	}
	s.logEdit(ctx, "unit", unitID, "capability-clear", "", "")
	return nil
}

// SetMutualAid toggles drawing units from non-home-agency stations.
func (s *StatusServiceImpl) SetMutualAid(ctx context.Context, enabled bool) error {
	if err := s.settings.SetBool(ctx, settingMutualAid, enabled); err != nil {
		return err
	}
	s.logEdit(ctx, "settings", settingMutualAid, "set", "", fmt.Sprintf("%t", enabled))
	return nil
}

// MutualAid reports whether mutual aid is enabled.
func (s *StatusServiceImpl) MutualAid(ctx context.Context) (bool, error) {
	return s.settings.GetBool(ctx, settingMutualAid, false)
}

// ListStatusOverrides returns all live status overrides.
func (s *StatusServiceImpl) ListStatusOverrides(ctx context.Context) (map[string]string, error) {
	return s.overrides.StatusOverrides(ctx)
}

// ListCapabilityOverrides returns the capability add and remove sets.
func (s *StatusServiceImpl) ListCapabilityOverrides(ctx context.Context) (map[string][]string, map[string][]string, error) {
	return s.overrides.CapabilityOverrides(ctx)
}

// ResetAll clears every status and capability override, restoring the
// pristine reference data state.
func (s *StatusServiceImpl) ResetAll(ctx context.Context) error {
	if err := s.overrides.ClearAll(ctx); err != nil {
		return err
	}
	s.logEdit(ctx, "overrides", "all", "reset", "", "")
	return nil
}

// requireUnit rejects edits against units the reference data doesn't know.
func (s *StatusServiceImpl) requireUnit(unitID string) error {
	if _, ok := s.data.UnitStation[unitID]; ok {
		return nil
	}
	if _, ok := s.data.UnitCaps[unitID]; ok {
		return nil
	}
	for _, bc := range s.data.BCUnits {
		if bc == unitID {
			return nil
		}
	}
	return fmt.Errorf("unit %s not found", unitID)
}

func (s *StatusServiceImpl) currentStatus(ctx context.Context, unitID string) string {
	statuses, err := s.overrides.StatusOverrides(ctx)
	if err != nil {
		return ""
	}
	if status, ok := statuses[unitID]; ok {
		return status
	}
	return s.data.UnitStatus[unitID]
}

func (s *StatusServiceImpl) logEdit(ctx context.Context, entityType, entityID, action, oldValue, newValue string) {
	if s.logWriter != nil {
		_ = s.logWriter.LogEdit(ctx, entityType, entityID, action, oldValue, newValue)
	}
}

// resyncCrossStaffing recomputes the staffing coercions over the stored
// overrides and persists the difference, so the coupling resolves at edit
// time rather than at query time.
func (s *StatusServiceImpl) resyncCrossStaffing(ctx context.Context) error {
	stored, err := s.overrides.StatusOverrides(ctx)
	if err != nil {
		return fmt.Errorf("failed to load status overrides: %w", err)
	}

	state := dispatch.NewDispatchState()
	for unit, status := range stored {
		state.StatusOverride[unit] = status
	}
	dispatch.ResolveCrossStaffing(s.data, state)

	for unit, status := range state.StatusOverride {
		if stored[unit] != status {
			if err := s.overrides.SetStatus(ctx, unit, status); err != nil {
				return err
			}
		}
	}
	for unit, status := range stored {
		if status != models.StatusCrossStaffed {
			continue
		}
		if _, ok := state.StatusOverride[unit]; !ok {
			if err := s.overrides.ClearStatus(ctx, unit); err != nil {
				return err
			}
		}
	}
	return nil
}

// Ensure StatusServiceImpl implements the interface
var _ primary.StatusService = (*StatusServiceImpl)(nil)
