package app

import (
	"context"
	"testing"

	"github.com/example/runcard/internal/models"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockOverrideStore implements secondary.OverrideStore in memory.
type mockOverrideStore struct {
	statuses map[string]string
	added    map[string][]string
	removed  map[string][]string

	setStatusErr error
	listErr      error
}

func newMockOverrideStore() *mockOverrideStore {
	return &mockOverrideStore{
		statuses: map[string]string{},
		added:    map[string][]string{},
		removed:  map[string][]string{},
	}
}

func (m *mockOverrideStore) SetStatus(ctx context.Context, unitID, status string) error {
	if m.setStatusErr != nil {
		return m.setStatusErr
	}
	m.statuses[unitID] = status
	return nil
}

func (m *mockOverrideStore) ClearStatus(ctx context.Context, unitID string) error {
	delete(m.statuses, unitID)
	return nil
}

func (m *mockOverrideStore) StatusOverrides(ctx context.Context) (map[string]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := map[string]string{}
	for k, v := range m.statuses {
		out[k] = v
	}
	return out, nil
}

func (m *mockOverrideStore) AddCapability(ctx context.Context, unitID, token string) error {
	m.removed[unitID] = removeToken(m.removed[unitID], token)
	m.added[unitID] = append(m.added[unitID], token)
	return nil
}

func (m *mockOverrideStore) RemoveCapability(ctx context.Context, unitID, token string) error {
	m.added[unitID] = removeToken(m.added[unitID], token)
	m.removed[unitID] = append(m.removed[unitID], token)
	return nil
}

func (m *mockOverrideStore) ClearCapabilities(ctx context.Context, unitID string) error {
	delete(m.added, unitID)
	delete(m.removed, unitID)
	return nil
}

func (m *mockOverrideStore) CapabilityOverrides(ctx context.Context) (map[string][]string, map[string][]string, error) {
	return m.added, m.removed, nil
}

func (m *mockOverrideStore) ClearAll(ctx context.Context) error {
	m.statuses = map[string]string{}
	m.added = map[string][]string{}
	m.removed = map[string][]string{}
	return nil
}

func removeToken(tokens []string, token string) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if t != token {
			out = append(out, t)
		}
	}
	return out
}

// mockSettingsStore implements secondary.SettingsStore in memory.
type mockSettingsStore struct {
	values map[string]bool
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{values: map[string]bool{}}
}

func (m *mockSettingsStore) SetBool(ctx context.Context, key string, value bool) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingsStore) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return def, nil
}

// mockLogWriter records edits for assertions.
type mockLogWriter struct {
	entries []string
}

func (m *mockLogWriter) LogEdit(ctx context.Context, entityType, entityID, action, oldValue, newValue string) error {
	m.entries = append(m.entries, entityType+"/"+entityID+"/"+action)
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func statusTestData() *models.ReferenceData {
	rd := models.NewReferenceData()
	rd.StationUnits["916"] = []string{"E916", "SQ916"}
	rd.UnitStation["E916"] = "916"
	rd.UnitStation["SQ916"] = "916"
	rd.UnitCaps["E916"] = []string{"E"}
	rd.UnitCaps["SQ916"] = []string{"K"}
	rd.UnitStatus["E916"] = models.StatusAvailable
	rd.UnitStatus["SQ916"] = models.StatusAvailable
	rd.CrossStaff = [][]string{{"E916", "SQ916"}}
	rd.BCUnits = []string{"BC902"}
	return rd
}

// ============================================================================
// Tests
// ============================================================================

func TestStatusService_SetStatusNormalizesToken(t *testing.T) {
	store := newMockOverrideStore()
	svc := NewStatusService(statusTestData(), store, newMockSettingsStore(), nil)

	if err := svc.SetStatus(context.Background(), "E916", "pa"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if store.statuses["E916"] != "PA" {
		t.Errorf("stored status = %q, want normalized PA", store.statuses["E916"])
	}
}

func TestStatusService_SetStatusRejectsUnknownUnit(t *testing.T) {
	svc := NewStatusService(statusTestData(), newMockOverrideStore(), newMockSettingsStore(), nil)
	if err := svc.SetStatus(context.Background(), "GHOST1", "PA"); err == nil {
		t.Error("edits against unknown units should be rejected")
	}
}

func TestStatusService_SetStatusAcceptsBCPoolUnit(t *testing.T) {
	store := newMockOverrideStore()
	svc := NewStatusService(statusTestData(), store, newMockSettingsStore(), nil)
	// BC902 has no station or capability record, only pool membership.
	if err := svc.SetStatus(context.Background(), "BC902", "CALL"); err != nil {
		t.Fatalf("SetStatus for pool unit failed: %v", err)
	}
}

func TestStatusService_SetStatusRejectsEmptyToken(t *testing.T) {
	svc := NewStatusService(statusTestData(), newMockOverrideStore(), newMockSettingsStore(), nil)
	if err := svc.SetStatus(context.Background(), "E916", "--"); err == nil {
		t.Error("a status that normalizes to nothing should be rejected")
	}
}

func TestStatusService_DispatchCoercesCrossStaffPartner(t *testing.T) {
	store := newMockOverrideStore()
	svc := NewStatusService(statusTestData(), store, newMockSettingsStore(), nil)

	if err := svc.SetStatus(context.Background(), "E916", models.StatusDispatched); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if store.statuses["SQ916"] != models.StatusCrossStaffed {
		t.Errorf("partner status = %q, want persisted %q", store.statuses["SQ916"], models.StatusCrossStaffed)
	}
}

func TestStatusService_ClearStatusLiftsCoercion(t *testing.T) {
	store := newMockOverrideStore()
	svc := NewStatusService(statusTestData(), store, newMockSettingsStore(), nil)

	if err := svc.SetStatus(context.Background(), "E916", models.StatusDispatched); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := svc.ClearStatus(context.Background(), "E916"); err != nil {
		t.Fatalf("ClearStatus failed: %v", err)
	}
	if _, ok := store.statuses["SQ916"]; ok {
		t.Errorf("partner coercion should be lifted after revert, got %q", store.statuses["SQ916"])
	}
}

func TestStatusService_CapabilityEditsNormalizeAndLog(t *testing.T) {
	store := newMockOverrideStore()
	log := &mockLogWriter{}
	svc := NewStatusService(statusTestData(), store, newMockSettingsStore(), log)
	ctx := context.Background()

	if err := svc.AddCapability(ctx, "E916", "hm"); err != nil {
		t.Fatalf("AddCapability failed: %v", err)
	}
	if len(store.added["E916"]) != 1 || store.added["E916"][0] != "HM" {
		t.Errorf("added = %v, want [HM]", store.added["E916"])
	}

	if err := svc.RemoveCapability(ctx, "E916", "e"); err != nil {
		t.Fatalf("RemoveCapability failed: %v", err)
	}
	if len(store.removed["E916"]) != 1 || store.removed["E916"][0] != "E" {
		t.Errorf("removed = %v, want [E]", store.removed["E916"])
	}

	if len(log.entries) != 2 {
		t.Errorf("audit entries = %v, want one per edit", log.entries)
	}
}

func TestStatusService_MutualAidRoundTrip(t *testing.T) {
	settings := newMockSettingsStore()
	svc := NewStatusService(statusTestData(), newMockOverrideStore(), settings, nil)
	ctx := context.Background()

	enabled, err := svc.MutualAid(ctx)
	if err != nil {
		t.Fatalf("MutualAid failed: %v", err)
	}
	if enabled {
		t.Error("mutual aid should default to off")
	}

	if err := svc.SetMutualAid(ctx, true); err != nil {
		t.Fatalf("SetMutualAid failed: %v", err)
	}
	enabled, err = svc.MutualAid(ctx)
	if err != nil {
		t.Fatalf("MutualAid failed: %v", err)
	}
	if !enabled {
		t.Error("mutual aid should read back on")
	}
}

func TestStatusService_ListCapabilityOverrides(t *testing.T) {
	store := newMockOverrideStore()
	svc := NewStatusService(statusTestData(), store, newMockSettingsStore(), nil)
	ctx := context.Background()

	if err := svc.AddCapability(ctx, "E916", "HM"); err != nil {
		t.Fatalf("AddCapability failed: %v", err)
	}
	if err := svc.RemoveCapability(ctx, "SQ916", "K"); err != nil {
		t.Fatalf("RemoveCapability failed: %v", err)
	}

	added, removed, err := svc.ListCapabilityOverrides(ctx)
	if err != nil {
		t.Fatalf("ListCapabilityOverrides failed: %v", err)
	}
	if len(added["E916"]) != 1 || added["E916"][0] != "HM" {
		t.Errorf("added = %v, want E916 -> [HM]", added)
	}
	if len(removed["SQ916"]) != 1 || removed["SQ916"][0] != "K" {
		t.Errorf("removed = %v, want SQ916 -> [K]", removed)
	}
}

func TestStatusService_ResetAll(t *testing.T) {
	store := newMockOverrideStore()
	svc := NewStatusService(statusTestData(), store, newMockSettingsStore(), nil)
	ctx := context.Background()

	if err := svc.SetStatus(ctx, "E916", "PA"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := svc.AddCapability(ctx, "E916", "HM"); err != nil {
		t.Fatalf("AddCapability failed: %v", err)
	}
	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}
	if len(store.statuses)+len(store.added)+len(store.removed) != 0 {
		t.Error("ResetAll should clear every override")
	}
	// Resetting twice is harmless.
	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("second ResetAll failed: %v", err)
	}
}

func TestStatusService_WorksWithoutLogWriter(t *testing.T) {
	svc := NewStatusService(statusTestData(), newMockOverrideStore(), newMockSettingsStore(), nil)
	if err := svc.SetStatus(context.Background(), "E916", "PA"); err != nil {
		t.Fatalf("SetStatus without log writer failed: %v", err)
	}
}
