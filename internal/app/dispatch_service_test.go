package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/runcard/internal/core/dispatch"
	"github.com/example/runcard/internal/models"
	"github.com/example/runcard/internal/ports/primary"
)

func dispatchTestData() *models.ReferenceData {
	rd := models.NewReferenceData()
	rd.RunCards["1203"] = []string{"905", "924"}
	rd.StationUnits["905"] = []string{"E905"}
	rd.StationUnits["924"] = []string{"E924"}
	rd.UnitStation["E905"] = "905"
	rd.UnitStation["E924"] = "924"
	rd.UnitCaps["E905"] = []string{"E", "BLS"}
	rd.UnitCaps["E924"] = []string{"E"}
	rd.UnitStatus["E905"] = models.StatusAvailable
	rd.UnitStatus["E924"] = models.StatusAvailable
	rd.Plans["HOUSE"] = models.PlanTemplate{
		Incident: "HOUSE",
		Standard: models.PlanVariant{Groups: []models.PlanGroup{{Qty: 1, Caps: []string{"E"}}}},
	}
	rd.Plans["ABDOM"] = models.PlanTemplate{
		Incident: "ABDOM",
		Standard: models.PlanVariant{Groups: []models.PlanGroup{{Qty: 1, Caps: []string{"A"}}}},
	}
	return rd
}

func TestDispatchService_RecommendMapsAssignments(t *testing.T) {
	svc := NewDispatchService(dispatchTestData(), newMockOverrideStore(), newMockSettingsStore())

	rec, err := svc.Recommend(context.Background(), primary.RecommendRequest{Zone: "1203", Incident: "HOUSE"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if rec.Zone != "1203" || rec.Incident != "HOUSE" {
		t.Errorf("echoed request = %s/%s, want 1203/HOUSE", rec.Zone, rec.Incident)
	}
	if len(rec.Assignments) != 1 {
		t.Fatalf("assignment count = %d, want 1", len(rec.Assignments))
	}
	a := rec.Assignments[0]
	if a.Unit != "E905" || a.Station != "905" || a.Source != "primary" {
		t.Errorf("assignment = %+v, want E905 at 905 from primary", a)
	}
	if !a.RankKnown || a.Rank != 0 {
		t.Errorf("rank = %d known=%v, want known 0", a.Rank, a.RankKnown)
	}
	if a.Display != "E905" {
		t.Errorf("display = %q, want E905", a.Display)
	}
}

func TestDispatchService_RecommendAppliesStoredOverrides(t *testing.T) {
	store := newMockOverrideStore()
	store.statuses["E905"] = models.StatusOutOfService
	svc := NewDispatchService(dispatchTestData(), store, newMockSettingsStore())

	rec, err := svc.Recommend(context.Background(), primary.RecommendRequest{Zone: "1203", Incident: "HOUSE"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(rec.Assignments) != 1 || rec.Assignments[0].Unit != "E924" {
		t.Errorf("assignments = %+v, override should exclude E905", rec.Assignments)
	}
}

func TestDispatchService_RecommendPassesThroughSentinels(t *testing.T) {
	svc := NewDispatchService(dispatchTestData(), newMockOverrideStore(), newMockSettingsStore())
	ctx := context.Background()

	_, err := svc.Recommend(ctx, primary.RecommendRequest{Zone: "9999", Incident: "HOUSE"})
	if !errors.Is(err, dispatch.ErrNoRunCard) {
		t.Errorf("err = %v, want ErrNoRunCard", err)
	}
	_, err = svc.Recommend(ctx, primary.RecommendRequest{Zone: "1203", Incident: "NOSUCH"})
	if !errors.Is(err, dispatch.ErrNoPlan) {
		t.Errorf("err = %v, want ErrNoPlan", err)
	}
}

func TestDispatchService_ListIncidentTypesSorted(t *testing.T) {
	svc := NewDispatchService(dispatchTestData(), newMockOverrideStore(), newMockSettingsStore())
	types, err := svc.ListIncidentTypes(context.Background())
	if err != nil {
		t.Fatalf("ListIncidentTypes failed: %v", err)
	}
	if len(types) != 2 || types[0] != "ABDOM" || types[1] != "HOUSE" {
		t.Errorf("types = %v, want sorted [ABDOM HOUSE]", types)
	}
}

func TestDispatchService_GetPlan(t *testing.T) {
	svc := NewDispatchService(dispatchTestData(), newMockOverrideStore(), newMockSettingsStore())

	view, err := svc.GetPlan(context.Background(), "HOUSE")
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if len(view.Groups) != 1 || view.Groups[0].Qty != 1 {
		t.Errorf("groups = %+v, want one 1xE group", view.Groups)
	}
	if view.HasNonHydrant {
		t.Error("HOUSE has no non-hydrant variant")
	}

	if _, err := svc.GetPlan(context.Background(), "NOSUCH"); !errors.Is(err, dispatch.ErrNoPlan) {
		t.Errorf("err = %v, want ErrNoPlan", err)
	}
}

func TestDispatchService_ListUnitsEffectiveView(t *testing.T) {
	store := newMockOverrideStore()
	store.statuses["E905"] = models.StatusDispatched
	store.added["E905"] = []string{"HM"}
	svc := NewDispatchService(dispatchTestData(), store, newMockSettingsStore())

	units, err := svc.ListUnits(context.Background())
	if err != nil {
		t.Fatalf("ListUnits failed: %v", err)
	}
	if len(units) != 2 || units[0].ID != "E905" || units[1].ID != "E924" {
		t.Fatalf("units = %+v, want sorted [E905 E924]", units)
	}

	e905 := units[0]
	if e905.Status != models.StatusDispatched || !e905.Overridden {
		t.Errorf("E905 = %+v, want overridden CALL status", e905)
	}
	if e905.StatusBase != models.StatusAvailable {
		t.Errorf("E905 base status = %q, want AQ", e905.StatusBase)
	}
	caps := map[string]bool{}
	for _, c := range e905.Capabilities {
		caps[c] = true
	}
	if !caps["HM"] {
		t.Errorf("E905 capabilities = %v, should include added HM", e905.Capabilities)
	}
}

func TestDispatchService_GetUnit(t *testing.T) {
	svc := NewDispatchService(dispatchTestData(), newMockOverrideStore(), newMockSettingsStore())

	unit, err := svc.GetUnit(context.Background(), "E905")
	if err != nil {
		t.Fatalf("GetUnit failed: %v", err)
	}
	if unit.Station != "905" {
		t.Errorf("station = %q, want 905", unit.Station)
	}

	if _, err := svc.GetUnit(context.Background(), "GHOST1"); err == nil {
		t.Error("unknown unit should be an error")
	}
}

func TestDispatchService_MutualAidSettingReachesEngine(t *testing.T) {
	rd := dispatchTestData()
	rd.RunCards["1203"] = []string{"850", "905"}
	rd.StationUnits["850"] = []string{"E850"}
	rd.UnitStation["E850"] = "850"
	rd.UnitCaps["E850"] = []string{"E"}
	rd.UnitStatus["E850"] = models.StatusAvailable

	settings := newMockSettingsStore()
	settings.values[settingMutualAid] = true
	svc := NewDispatchService(rd, newMockOverrideStore(), settings)

	rec, err := svc.Recommend(context.Background(), primary.RecommendRequest{Zone: "1203", Incident: "HOUSE"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(rec.Assignments) != 1 || rec.Assignments[0].Unit != "E850" {
		t.Errorf("assignments = %+v, mutual aid should admit E850", rec.Assignments)
	}
}
