package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/runcard/internal/core/dispatch"
	"github.com/example/runcard/internal/models"
	"github.com/example/runcard/internal/ports/primary"
	"github.com/example/runcard/internal/ports/secondary"
)

// settingMutualAid is the settings key for the mutual-aid toggle.
const settingMutualAid = "mutual_aid"

// DispatchServiceImpl implements the DispatchService interface. The engine
// is CPU-bound and sub-millisecond, so recommendation runs are serialized
// with a single mutex instead of fine-grained locking; each run works on a
// snapshot of the edit state.
type DispatchServiceImpl struct {
	data      *models.ReferenceData
	overrides secondary.OverrideStore
	settings  secondary.SettingsStore

	mu sync.Mutex
}

// NewDispatchService creates a new DispatchService with injected dependencies.
func NewDispatchService(
	data *models.ReferenceData,
	overrides secondary.OverrideStore,
	settings secondary.SettingsStore,
) *DispatchServiceImpl {
	return &DispatchServiceImpl{
		data:      data,
		overrides: overrides,
		settings:  settings,
	}
}

// Recommend runs the recommendation engine for a zone and incident type.
func (s *DispatchServiceImpl) Recommend(ctx context.Context, req primary.RecommendRequest) (*primary.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	result, err := dispatch.Recommend(dispatch.Input{
		Data:     s.data,
		State:    state,
		Zone:     req.Zone,
		Incident: req.Incident,
	})
	if err != nil {
		return nil, err
	}

	rec := &primary.Recommendation{
		Zone:     result.Zone,
		Incident: result.Incident,
		Variant:  result.Variant,
		Warnings: result.Warnings,
		Trace:    result.Trace,
	}
	for _, a := range result.Assignments {
		rec.Assignments = append(rec.Assignments, primary.AssignmentView{
			Unit:        a.Unit,
			Capability:  a.Capability,
			Station:     a.Station,
			Source:      string(a.Source),
			Rank:        a.Rank.N,
			RankKnown:   a.Rank.Known,
			Placeholder: a.Placeholder,
			Display:     a.Label(),
		})
	}
	return rec, nil
}

// ListIncidentTypes lists the incident types with a response plan.
func (s *DispatchServiceImpl) ListIncidentTypes(ctx context.Context) ([]string, error) {
	types := make([]string, 0, len(s.data.Plans))
	for incident := range s.data.Plans {
		types = append(types, incident)
	}
	sort.Strings(types)
	return types, nil
}

// GetPlan returns the response template for an incident type.
func (s *DispatchServiceImpl) GetPlan(ctx context.Context, incident string) (*primary.PlanView, error) {
	tpl, ok := s.data.Plans[incident]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dispatch.ErrNoPlan, incident)
	}

	view := &primary.PlanView{Incident: incident}
	for _, g := range tpl.Standard.Groups {
		view.Groups = append(view.Groups, primary.PlanGroupView{Qty: g.Qty, Caps: g.Caps})
	}
	for _, need := range tpl.Standard.IfCloser {
		view.IfCloser = append(view.IfCloser, primary.IfCloserView{Cap: need.Cap, Count: need.Count})
	}
	if tpl.NonHydrant != nil {
		view.HasNonHydrant = true
		for _, g := range tpl.NonHydrant.Groups {
			view.NonHydrant = append(view.NonHydrant, primary.PlanGroupView{Qty: g.Qty, Caps: g.Caps})
		}
	}
	return view, nil
}

// ListUnits lists all units with effective status and capabilities.
func (s *DispatchServiceImpl) ListUnits(ctx context.Context) ([]*primary.UnitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(s.data.UnitStation))
	seen := map[string]bool{}
	for unit := range s.data.UnitStation {
		ids = append(ids, unit)
		seen[unit] = true
	}
	for unit := range s.data.UnitCaps {
		if !seen[unit] {
			ids = append(ids, unit)
		}
	}
	sort.Strings(ids)

	views := make([]*primary.UnitView, 0, len(ids))
	for _, unit := range ids {
		views = append(views, s.unitView(state, unit))
	}
	return views, nil
}

// GetUnit returns one unit with effective status and capabilities.
func (s *DispatchServiceImpl) GetUnit(ctx context.Context, unitID string) (*primary.UnitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.UnitStation[unitID]; !ok {
		if _, ok := s.data.UnitCaps[unitID]; !ok {
			return nil, fmt.Errorf("unit %s not found", unitID)
		}
	}
	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return s.unitView(state, unitID), nil
}

func (s *DispatchServiceImpl) unitView(state *dispatch.DispatchState, unit string) *primary.UnitView {
	caps := dispatch.EffectiveCapabilities(s.data, state, unit)
	tokens := make([]string, 0, len(caps))
	for token := range caps {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	_, overridden := state.StatusOverride[unit]
	return &primary.UnitView{
		ID:           unit,
		Station:      s.data.UnitStation[unit],
		Status:       dispatch.EffectiveStatus(s.data, state, unit),
		StatusBase:   s.data.UnitStatus[unit],
		Overridden:   overridden,
		Capabilities: tokens,
	}
}

// loadState assembles the edit state from persistence. Cross-staff
// coercion is re-resolved over the snapshot so base-data dispatched units
// sideline their partners even before any live edit occurs.
func (s *DispatchServiceImpl) loadState(ctx context.Context) (*dispatch.DispatchState, error) {
	state := dispatch.NewDispatchState()

	statuses, err := s.overrides.StatusOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status overrides: %w", err)
	}
	state.StatusOverride = statuses

	added, removed, err := s.overrides.CapabilityOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load capability overrides: %w", err)
	}
	state.CapsAdded = added
	state.CapsRemoved = removed

	mutualAid, err := s.settings.GetBool(ctx, settingMutualAid, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load mutual aid setting: %w", err)
	}
	state.MutualAid = mutualAid

	dispatch.ResolveCrossStaffing(s.data, state)
	return state, nil
}

// Ensure DispatchServiceImpl implements the interface
var _ primary.DispatchService = (*DispatchServiceImpl)(nil)
